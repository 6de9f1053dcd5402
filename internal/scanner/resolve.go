package scanner

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// FolderPattern returns the name prefix a project folder for day must
// start with: prefix, the day zero-padded to two digits, then a dash.
func FolderPattern(prefix string, day int) string {
	return fmt.Sprintf("%s%02d-", prefix, day)
}

// Resolve scans the immediate children of root for the folder belonging to
// day. It returns "" when nothing matches. When several folders match, the
// lexicographically smallest name wins so results never depend on listing
// order.
func Resolve(root string, day int, prefix string) (string, error) {
	r, err := NewResolver(root, prefix)
	if err != nil {
		return "", err
	}
	return r.Resolve(day), nil
}

// Resolver answers folder lookups from a single listing of the root.
type Resolver struct {
	root   string
	prefix string
	dirs   []string
}

// NewResolver lists root once. Only directories are candidates.
func NewResolver(root, prefix string) (*Resolver, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	r := &Resolver{root: root, prefix: prefix}
	for _, entry := range entries {
		if entry.IsDir() {
			r.dirs = append(r.dirs, entry.Name())
		}
	}
	sort.Strings(r.dirs)
	return r, nil
}

// Root returns the directory the resolver listed.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the folder name for day, or "" when there is none.
func (r *Resolver) Resolve(day int) string {
	pattern := FolderPattern(r.prefix, day)
	for _, name := range r.dirs {
		if strings.HasPrefix(name, pattern) {
			return name
		}
	}
	return ""
}

// Matches returns every folder matching day, smallest first. More than one
// match means the root is ambiguous for that day.
func (r *Resolver) Matches(day int) []string {
	pattern := FolderPattern(r.prefix, day)
	var out []string
	for _, name := range r.dirs {
		if strings.HasPrefix(name, pattern) {
			out = append(out, name)
		}
	}
	return out
}
