package gallery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.png", "notes.txt", "c.webp", "d.JPG"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0755); err != nil {
		t.Fatal(err)
	}

	col, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if col.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 image files", col.Len())
	}

	// Lexical order, directories and non-images skipped.
	wantTitles := []string{"a", "b", "c", "d"}
	for i, item := range col.Items() {
		if item.Title != wantTitles[i] {
			t.Errorf("item %d title = %q, want %q", i, item.Title, wantTitles[i])
		}
		if item.ID == "" {
			t.Errorf("item %d has empty id", i)
		}
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCollection_Get(t *testing.T) {
	col := NewCollection([]Item{
		{ID: "one", SourceRef: "a.jpg"},
		{ID: "two", SourceRef: "b.jpg"},
	})

	item, ok := col.Get("two")
	if !ok || item.SourceRef != "b.jpg" {
		t.Errorf("Get(two) = %+v, %v", item, ok)
	}

	if _, ok := col.Get("three"); ok {
		t.Error("Get(three) should report not found")
	}
}

func TestCollection_IDs(t *testing.T) {
	col := NewCollection([]Item{{ID: "one"}, {ID: "two"}})

	ids := col.IDs()
	if len(ids) != 2 || ids[0] != "one" || ids[1] != "two" {
		t.Errorf("IDs() = %v", ids)
	}
}
