// Package solutions holds the puzzle solutions and the registry the CLI
// looks them up in.
package solutions

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/dsa/internal/errors"
)

// Solution is a registered solution function.
type Solution struct {
	Category string
	Name     string
	Fn       any
}

// Fixture returns the conventional fixture path for s below testsDir.
func (s Solution) Fixture(testsDir string) string {
	return filepath.Join(testsDir, s.Category, s.Name+".json")
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Solution)
)

// key folds name so IsUnique, is_unique, is-unique and isunique collide.
func key(name string) string {
	return strings.ToLower(strcase.ToCamel(name))
}

// Register adds fn under category and name. It panics if the name is empty
// or already taken, like database/sql driver registration.
func Register(category, name string, fn any) {
	mu.Lock()
	defer mu.Unlock()

	if name == "" || category == "" {
		panic("solutions: Register called with an empty category or name")
	}
	if fn == nil {
		panic("solutions: Register fn is nil for " + name)
	}
	k := key(name)
	if existing, dup := registry[k]; dup {
		panic(fmt.Sprintf("solutions: Register called twice for %s (already %s/%s)", name, existing.Category, existing.Name))
	}
	registry[k] = Solution{Category: category, Name: name, Fn: fn}
}

// Lookup finds a solution by name, ignoring case and word separators.
func Lookup(name string) (Solution, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := registry[key(name)]
	if !ok {
		return Solution{}, errors.NewConfigError(fmt.Sprintf("no solution named %q", name), errors.ErrUnknownSolution)
	}
	return s, nil
}

// All returns every registered solution ordered by category, then name.
func All() []Solution {
	mu.RLock()
	defer mu.RUnlock()

	all := make([]Solution, 0, len(registry))
	for _, s := range registry {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Category != all[j].Category {
			return all[i].Category < all[j].Category
		}
		return all[i].Name < all[j].Name
	})
	return all
}

// Categories returns the distinct categories in sorted order.
func Categories() []string {
	var cats []string
	for _, s := range All() {
		if len(cats) == 0 || cats[len(cats)-1] != s.Category {
			cats = append(cats, s.Category)
		}
	}
	return cats
}

// InCategory returns the solutions registered under category.
func InCategory(category string) []Solution {
	var out []Solution
	for _, s := range All() {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}
