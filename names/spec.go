// Package names resolves compact name specifications into display names
// and keeps bidirectional maps between names and ids.
package names

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSpec  = errors.New("names: invalid name specification")
	ErrNameConflict = errors.New("names: name is already in use")
)

// A Spec is a parsed name specification.
//
// A specification is literal text with optional groups of comma-separated
// alternatives in braces, such as "{F,Front}" or "{U,Up}{R,Right}". The
// canonical name uses the first alternative of every group, and every
// combination of alternatives is accepted when looking up a name.
type Spec struct {
	parts [][]string
}

// ParseSpec parses a name specification.
func ParseSpec(s string) (Spec, error) {
	if s == "" {
		return Spec{}, errors.Wrap(ErrInvalidSpec, "empty specification")
	}
	var res Spec
	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			res.parts = append(res.parts, []string{literal.String()})
			literal.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			end := strings.IndexByte(s[i:], '}')
			if end == -1 {
				return Spec{}, errors.Wrapf(ErrInvalidSpec, "unclosed brace in %q", s)
			}
			group := s[i+1 : i+end]
			if strings.ContainsRune(group, '{') {
				return Spec{}, errors.Wrapf(ErrInvalidSpec, "nested brace in %q", s)
			}
			alts := strings.Split(group, ",")
			for _, alt := range alts {
				if alt == "" {
					return Spec{}, errors.Wrapf(ErrInvalidSpec, "empty alternative in %q", s)
				}
			}
			flushLiteral()
			res.parts = append(res.parts, alts)
			i += end
		case '}':
			return Spec{}, errors.Wrapf(ErrInvalidSpec, "unmatched brace in %q", s)
		default:
			literal.WriteByte(s[i])
		}
	}
	flushLiteral()
	return res, nil
}

// MustParseSpec is like ParseSpec but panics on failure.
func MustParseSpec(s string) Spec {
	res, err := ParseSpec(s)
	if err != nil {
		panic(err)
	}
	return res
}

// Literal creates a specification matching exactly one name.
func Literal(name string) Spec {
	return Spec{parts: [][]string{{name}}}
}

// IsZero checks if the specification is the zero value.
func (s Spec) IsZero() bool {
	return len(s.parts) == 0
}

// Canonical returns the display name.
func (s Spec) Canonical() string {
	var b strings.Builder
	for _, p := range s.parts {
		b.WriteString(p[0])
	}
	return b.String()
}

// Expand returns every name matched by the specification, starting with the
// canonical name.
func (s Spec) Expand() []string {
	res := []string{""}
	for _, p := range s.parts {
		var next []string
		for _, prefix := range res {
			for _, alt := range p {
				next = append(next, prefix+alt)
			}
		}
		res = next
	}
	return res
}

// Matches checks if a name is one of the specification's expansions.
func (s Spec) Matches(name string) bool {
	for _, n := range s.Expand() {
		if n == name {
			return true
		}
	}
	return false
}

// String returns the specification in its textual form.
func (s Spec) String() string {
	var b strings.Builder
	for _, p := range s.parts {
		if len(p) == 1 && !strings.ContainsAny(p[0], "{},") {
			b.WriteString(p[0])
		} else {
			b.WriteString("{" + strings.Join(p, ",") + "}")
		}
	}
	return b.String()
}
