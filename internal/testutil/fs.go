package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/akari-dl/hondana/internal/models"
)

// CreateChapter creates a chapter folder with the given page files
// under root/manga.
func CreateChapter(t *testing.T, root, manga, chapter string, pages ...string) {
	t.Helper()
	dir := filepath.Join(root, manga, chapter)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create chapter dir: %v", err)
	}
	for _, page := range pages {
		if err := os.WriteFile(filepath.Join(dir, page), []byte("img"), 0644); err != nil {
			t.Fatalf("Failed to create page %s: %v", page, err)
		}
	}
}

// CreateEmptyManga creates a manga folder with no chapter subfolders.
func CreateEmptyManga(t *testing.T, root, manga string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, manga), 0755); err != nil {
		t.Fatalf("Failed to create manga dir: %v", err)
	}
}

// WriteSidecar writes a details sidecar file into root/manga.
func WriteSidecar(t *testing.T, root, manga string, details models.AlbumDetails) {
	t.Helper()
	data, err := json.Marshal(details)
	if err != nil {
		t.Fatalf("Failed to marshal sidecar: %v", err)
	}
	path := filepath.Join(root, manga, "xiangxi.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create manga dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write sidecar: %v", err)
	}
}
