package names

import (
	"strconv"
	"strings"
)

// Autonames is a stream of candidate names for elements without an explicit
// name.
type Autonames interface {
	Next() string
}

// Letters produces "A", "B", ..., "Z", "AA", "AB", and so on.
type Letters struct {
	// Lower, if true, uses lowercase letters.
	Lower bool

	n int
}

func (l *Letters) Next() string {
	l.n++
	var res []byte
	for n := l.n; n > 0; n = (n - 1) / 26 {
		res = append(res, byte('A'+(n-1)%26))
	}
	for i := 0; i < len(res)/2; i++ {
		res[i], res[len(res)-i-1] = res[len(res)-i-1], res[i]
	}
	if l.Lower {
		return strings.ToLower(string(res))
	}
	return string(res)
}

// Numbered produces Prefix+"1", Prefix+"2", etc.
type Numbered struct {
	Prefix string

	n int
}

func (n *Numbered) Next() string {
	n.n++
	return n.Prefix + strconv.Itoa(n.n)
}

// List produces names from a fixed list, then falls back to another stream.
type List struct {
	Names    []string
	Fallback Autonames

	i int
}

// FromList creates a List which falls back to numbered names.
func FromList(prefix string, names ...string) *List {
	return &List{Names: names, Fallback: &Numbered{Prefix: prefix}}
}

func (l *List) Next() string {
	if l.i < len(l.Names) {
		l.i++
		return l.Names[l.i-1]
	}
	return l.Fallback.Next()
}

// NextUnused returns the first name from a stream which taken rejects.
func NextUnused(a Autonames, taken func(name string) bool) string {
	for {
		name := a.Next()
		if !taken(name) {
			return name
		}
	}
}
