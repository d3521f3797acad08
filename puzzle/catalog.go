package puzzle

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Constructor creates the builder for a puzzle.
type Constructor func() (*Builder, error)

type catalogEntry struct {
	name        string
	constructor Constructor

	built  bool
	puzzle *Puzzle
	err    error
}

// A Catalog is a set of puzzle definitions which are built on demand.
//
// Catalogs are safe to use from multiple Goroutines.
type Catalog struct {
	// Verbose, if true, makes every builder log progress while building.
	Verbose bool

	lock    sync.Mutex
	entries map[string]*catalogEntry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: map[string]*catalogEntry{}}
}

// Register adds a puzzle definition under a unique id.
func (c *Catalog) Register(id, name string, constructor Constructor) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.entries[id]; ok {
		return errors.Wrapf(ErrDuplicatePuzzle, "id %q", id)
	}
	c.entries[id] = &catalogEntry{name: name, constructor: constructor}
	return nil
}

// IDs returns the registered ids in sorted order.
func (c *Catalog) IDs() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := maps.Keys(c.entries)
	slices.Sort(res)
	return res
}

// Name returns the display name of a puzzle.
func (c *Catalog) Name(id string) (string, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		return "", errors.Wrapf(ErrNoSuchPuzzle, "id %q", id)
	}
	return entry.name, nil
}

// Build builds a puzzle, or returns the result of a previous build.
//
// Failed builds are cached as well, since definitions are deterministic.
func (c *Catalog) Build(id string) (*Puzzle, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchPuzzle, "id %q", id)
	}
	if !entry.built {
		entry.built = true
		entry.puzzle, entry.err = entry.build(c.Verbose)
	}
	return entry.puzzle, entry.err
}

func (c *catalogEntry) build(verbose bool) (*Puzzle, error) {
	b, err := c.constructor()
	if err != nil {
		return nil, errors.Wrapf(err, "construct %s", c.name)
	}
	if verbose {
		b.Verbose = true
	}
	if b.Name == "" {
		b.Name = c.name
	}
	p, err := b.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "build %s", c.name)
	}
	return p, nil
}
