package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Category carries display metadata for an expense category.
type Category struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Icon  string `toml:"icon"`
	Color string `toml:"color"`
}

// defaultCategoriesTOML seeds the registry on first run. Users extend
// the set through the category screen; the server copy wins once
// loaded.
const defaultCategoriesTOML = `# Built-in expense categories.

[[category]]
name = "Groceries"
icon = "🛒"
color = "#8bd5ca"

[[category]]
name = "Dining"
icon = "🍽"
color = "#f5a97f"

[[category]]
name = "Transport"
icon = "🚌"
color = "#8aadf4"

[[category]]
name = "Utilities"
icon = "💡"
color = "#eed49f"

[[category]]
name = "Rent"
icon = "🏠"
color = "#c6a0f6"

[[category]]
name = "Health"
icon = "🩺"
color = "#a6da95"

[[category]]
name = "Entertainment"
icon = "🎬"
color = "#f5bde6"

[[category]]
name = "Other"
icon = "📦"
color = "#939ab7"
`

type categoriesFile struct {
	Category []Category `toml:"category"`
}

// categoryNamespace gives local categories stable IDs derived from
// their normalized name, so re-adding a category reuses the same ID.
var categoryNamespace = uuid.MustParse("7a2f1d9c-4e3b-4f6a-9c8d-1b5e7f0a2c4d")

// NormalizeCategory lowercases a name and strips everything except
// letters and digits, so "Eating Out" and "eating-out" collide.
func NormalizeCategory(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Registry holds the known categories keyed by normalized name.
// Consumers share it by reference and refresh it; they never write to
// it directly.
type Registry struct {
	byKey map[string]Category
}

// DefaultRegistry parses the built-in category set.
func DefaultRegistry() (*Registry, error) {
	var f categoriesFile
	if err := toml.Unmarshal([]byte(defaultCategoriesTOML), &f); err != nil {
		return nil, fmt.Errorf("parse default categories: %w", err)
	}
	r := &Registry{byKey: make(map[string]Category, len(f.Category))}
	for _, c := range f.Category {
		if c.ID == "" {
			c.ID = uuid.NewSHA1(categoryNamespace, []byte(NormalizeCategory(c.Name))).String()
		}
		r.byKey[NormalizeCategory(c.Name)] = c
	}
	return r, nil
}

// Replace swaps the registry contents for the server's category list.
func (r *Registry) Replace(cats []Category) {
	byKey := make(map[string]Category, len(cats))
	for _, c := range cats {
		if c.ID == "" {
			c.ID = uuid.NewSHA1(categoryNamespace, []byte(NormalizeCategory(c.Name))).String()
		}
		byKey[NormalizeCategory(c.Name)] = c
	}
	r.byKey = byKey
}

// Add registers a new category. Adding an existing name (after
// normalization) is an error.
func (r *Registry) Add(c Category) error {
	key := NormalizeCategory(c.Name)
	if key == "" {
		return fmt.Errorf("category name %q has no letters or digits", c.Name)
	}
	if _, ok := r.byKey[key]; ok {
		return fmt.Errorf("category %q already exists", c.Name)
	}
	if c.ID == "" {
		c.ID = uuid.NewSHA1(categoryNamespace, []byte(key)).String()
	}
	if c.Icon == "" {
		c.Icon = "📦"
	}
	if c.Color == "" {
		c.Color = "#939ab7"
	}
	r.byKey[key] = c
	return nil
}

// Rename moves a category to a new name, keeping its metadata.
func (r *Registry) Rename(oldName, newName string) error {
	oldKey := NormalizeCategory(oldName)
	newKey := NormalizeCategory(newName)
	c, ok := r.byKey[oldKey]
	if !ok {
		return fmt.Errorf("category %q not found", oldName)
	}
	if newKey == "" {
		return fmt.Errorf("category name %q has no letters or digits", newName)
	}
	if newKey != oldKey {
		if _, exists := r.byKey[newKey]; exists {
			return fmt.Errorf("category %q already exists", newName)
		}
		delete(r.byKey, oldKey)
	}
	c.Name = newName
	r.byKey[newKey] = c
	return nil
}

// Remove drops a category from the registry.
func (r *Registry) Remove(name string) {
	delete(r.byKey, NormalizeCategory(name))
}

// Lookup finds a category by name, normalization-insensitive.
func (r *Registry) Lookup(name string) (Category, bool) {
	c, ok := r.byKey[NormalizeCategory(name)]
	return c, ok
}

// Names returns the category names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byKey))
	for _, c := range r.byKey {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// All returns the categories sorted by name.
func (r *Registry) All() []Category {
	cats := make([]Category, 0, len(r.byKey))
	for _, c := range r.byKey {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats
}
