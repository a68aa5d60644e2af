// Package gallery holds the photo collection shown on the wall.
package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Item is one photo in the gallery. Items are immutable once loaded;
// identity is the ID.
type Item struct {
	ID        string `json:"id"`
	SourceRef string `json:"sourceRef"` // opaque locator, here a file path
	Title     string `json:"title"`
}

// Collection is the in-memory set of gallery items. The collection is
// loaded once at startup and never persisted.
type Collection struct {
	items []Item
}

// imageExtensions lists the file types accepted by LoadDir.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// LoadDir scans a directory for image files and builds a collection.
// Files are taken in lexical order so the collection (minus the generated
// ids) is deterministic for a given directory.
func LoadDir(dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{
			ID:        uuid.NewString(),
			SourceRef: filepath.Join(dir, name),
			Title:     strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}

	return &Collection{items: items}, nil
}

// NewCollection builds a collection from pre-made items. Used by tests and
// by hosts that source images elsewhere.
func NewCollection(items []Item) *Collection {
	return &Collection{items: items}
}

// Items returns the items in load order.
func (c *Collection) Items() []Item {
	return c.items
}

// IDs returns the item ids in load order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

// Get returns the item with the given id.
func (c *Collection) Get(id string) (Item, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}
