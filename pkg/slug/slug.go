// Package slug derives filesystem-safe names from human-readable titles,
// resolving collisions within one destination directory.
package slug

import (
	"fmt"

	gslug "github.com/gosimple/slug"
)

// Make returns a plain one-shot slug for a title, with no collision
// handling. Empty or unsluggable titles become "untitled".
func Make(title string) string {
	s := gslug.Make(title)
	if s == "" {
		return "untitled"
	}
	return s
}

// Namer hands out slugs that are unique among everything it has seen.
type Namer struct {
	used map[string]struct{}
}

// NewNamer creates a Namer pre-seeded with already-taken names.
func NewNamer(existing ...string) *Namer {
	n := &Namer{used: make(map[string]struct{}, len(existing))}
	for _, name := range existing {
		n.used[name] = struct{}{}
	}
	return n
}

// Slug returns a unique slug for the title, suffixing "-2", "-3", ... on
// collision. The returned name is recorded as taken.
func (n *Namer) Slug(title string) string {
	base := Make(title)

	candidate := base
	for i := 2; n.taken(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	n.used[candidate] = struct{}{}
	return candidate
}

func (n *Namer) taken(name string) bool {
	_, ok := n.used[name]
	return ok
}
