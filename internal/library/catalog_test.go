package library

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/akari-dl/hondana/internal/models"
)

func writeChapter(t *testing.T, root, manga, chapter string, pages ...string) {
	t.Helper()
	dir := filepath.Join(root, manga, chapter)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, page := range pages {
		if err := os.WriteFile(filepath.Join(dir, page), []byte("img"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func writeSidecar(t *testing.T, root, manga string, details models.AlbumDetails) {
	t.Helper()
	data, err := json.Marshal(details)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, manga), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, manga, SidecarFilename), data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAllMissingRoot(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "nope"))
	mangas, err := c.ScanAll(false)
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(mangas) != 0 {
		t.Errorf("expected empty listing for missing root, got %d entries", len(mangas))
	}
}

func TestScanAllSkipsFoldersWithoutChapters(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "Good Manga", "ch1", "001.jpg")
	if err := os.MkdirAll(filepath.Join(root, "Empty Folder"), 0755); err != nil {
		t.Fatal(err)
	}
	// Loose files at the root level are not manga folders.
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	mangas, err := NewCatalog(root).ScanAll(false)
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(mangas) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(mangas))
	}
	if mangas[0].SourceID != "Good Manga" {
		t.Errorf("expected Good Manga, got %q", mangas[0].SourceID)
	}
}

func TestScanAllNaturalOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"vol10", "vol2", "vol1"} {
		writeChapter(t, root, name, "ch1", "p1.jpg")
	}

	mangas, err := NewCatalog(root).ScanAll(false)
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	got := []string{}
	for _, m := range mangas {
		got = append(got, m.SourceID)
	}
	want := []string{"vol1", "vol2", "vol10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestScanFolderShallow(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "A", "ch2", "b.jpg", "a.jpg")
	writeChapter(t, root, "A", "ch10", "z.jpg")
	writeChapter(t, root, "A", "ch1", "img10.jpg", "img2.jpg")

	m, err := NewCatalog(root).ScanFolder("A", false)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}

	// Folder-derived defaults when no sidecar is present.
	if m.ID != "A" || m.Title != "A" || m.Author != "Unknown" {
		t.Errorf("unexpected defaults: id=%q title=%q author=%q", m.ID, m.Title, m.Author)
	}
	if m.IsFullDetails {
		t.Error("shallow scan should not be marked full details")
	}
	if len(m.Chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(m.Chapters))
	}
	// Chapters sort naturally, so ch1 precedes ch2 and ch10.
	if m.Chapters[0].ID != "ch1" || m.Chapters[1].ID != "ch2" || m.Chapters[2].ID != "ch10" {
		t.Errorf("unexpected chapter order: %v", m.Chapters)
	}
	// Cover is the naturally-first image of the first chapter.
	if m.CoverURL != "/files/A/ch1/img2.jpg" {
		t.Errorf("unexpected cover URL %q", m.CoverURL)
	}
	// Shallow scans carry no pages and no page count.
	if m.TotalPages != 0 {
		t.Errorf("expected 0 total pages on shallow scan, got %d", m.TotalPages)
	}
	for _, ch := range m.Chapters {
		if len(ch.Pages) != 0 {
			t.Errorf("chapter %s carries pages on shallow scan", ch.ID)
		}
	}
}

func TestScanFolderFull(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "A", "ch1", "p1.jpg", "p2.png", "notes.txt")
	writeChapter(t, root, "A", "ch2", "p1.webp")

	m, err := NewCatalog(root).ScanFolder("A", true)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if !m.IsFullDetails {
		t.Error("full scan should be marked full details")
	}
	if m.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", m.TotalPages)
	}
	if len(m.Chapters[0].Pages) != 2 {
		t.Fatalf("expected 2 pages in ch1, got %d", len(m.Chapters[0].Pages))
	}
	if m.Chapters[0].Pages[0].URL != "/files/A/ch1/p1.jpg" {
		t.Errorf("unexpected page URL %q", m.Chapters[0].Pages[0].URL)
	}
}

func TestScanFolderNotFound(t *testing.T) {
	c := NewCatalog(t.TempDir())
	if _, err := c.ScanFolder("nope", false); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScanFolderNoChaptersIsError(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Empty"), 0755); err != nil {
		t.Fatal(err)
	}
	_, err := NewCatalog(root).ScanFolder("Empty", false)
	if err == nil || err == ErrNotFound {
		t.Errorf("expected parse error for chapterless folder, got %v", err)
	}
}

func TestSidecarEnrichment(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "folder-123", "第1话", "00001.jpg")
	writeSidecar(t, root, "folder-123", models.AlbumDetails{
		ID:       "998877",
		Title:    "Real Title",
		Author:   "Someone",
		Keywords: []string{"action", "drama"},
		Tags:     []string{"drama", "ongoing", ""},
	})

	m, err := NewCatalog(root).ScanFolder("folder-123", false)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if m.ID != "998877" {
		t.Errorf("expected sidecar id, got %q", m.ID)
	}
	if m.Title != "Real Title" || m.Author != "Someone" {
		t.Errorf("sidecar fields not applied: title=%q author=%q", m.Title, m.Author)
	}
	if m.SourceID != "folder-123" {
		t.Errorf("source id should stay the folder name, got %q", m.SourceID)
	}
	want := []string{"action", "drama", "ongoing"}
	if len(m.Keywords) != len(want) {
		t.Fatalf("expected keywords %v, got %v", want, m.Keywords)
	}
	for i := range want {
		if m.Keywords[i] != want[i] {
			t.Fatalf("expected keywords %v, got %v", want, m.Keywords)
		}
	}
}

func TestSidecarUnparsableFallsBack(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "B", "ch1", "p.jpg")
	if err := os.WriteFile(filepath.Join(root, "B", SidecarFilename), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewCatalog(root).ScanFolder("B", false)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if m.ID != "B" || m.Title != "B" || m.Author != "Unknown" {
		t.Errorf("expected folder defaults, got id=%q title=%q author=%q", m.ID, m.Title, m.Author)
	}
}

func TestCoverURLEscaping(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "My Manga #1", "ch 1", "page 1.jpg")

	m, err := NewCatalog(root).ScanFolder("My Manga #1", false)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if m.CoverURL != "/files/My%20Manga%20%231/ch%201/page%201.jpg" {
		t.Errorf("unexpected escaped cover URL %q", m.CoverURL)
	}
}

func TestCoverURLEmptyWhenFirstChapterHasNoImages(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "A", "ch1"), 0755); err != nil {
		t.Fatal(err)
	}
	writeChapter(t, root, "A", "ch2", "p.jpg")

	m, err := NewCatalog(root).ScanFolder("A", false)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if m.CoverURL != "" {
		t.Errorf("expected no cover when first chapter is empty, got %q", m.CoverURL)
	}
}

func TestCoverFile(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, root, "A", "ch2", "other.jpg")
	writeChapter(t, root, "A", "ch1", "b.jpg", "a.png")
	c := NewCatalog(root)

	path, err := c.CoverFile("A")
	if err != nil {
		t.Fatalf("CoverFile failed: %v", err)
	}
	if path != filepath.Join(root, "A", "ch1", "a.png") {
		t.Errorf("unexpected cover path %q", path)
	}

	if _, err := c.CoverFile("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
