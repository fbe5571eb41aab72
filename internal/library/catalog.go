// This file contains the directory-scanning catalog builder. It walks
// the download root, builds one entry per top-level manga folder from
// the folder's chapter subfolders and optional sidecar details file,
// and produces page URLs under the static file mount.

package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/akari-dl/hondana/internal/models"
	"github.com/akari-dl/hondana/internal/util"
)

// SidecarFilename is the JSON details file written into a manga folder
// by the downloader.
const SidecarFilename = "xiangxi.txt"

// FilesMount is the URL prefix under which the download root is served
// as static files.
const FilesMount = "/files"

// ErrNotFound is returned when a named manga folder does not exist.
var ErrNotFound = errors.New("manga not found")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Catalog scans the download root. It holds no state beyond the root
// path; every scan reads the filesystem fresh.
type Catalog struct {
	root string
}

func NewCatalog(root string) *Catalog {
	return &Catalog{root: root}
}

// Root returns the download root path.
func (c *Catalog) Root() string {
	return c.root
}

// ScanAll lists the download root's immediate subfolders in natural
// order and builds an entry for each. Folders without chapter
// subfolders, and folders that cannot be listed, are skipped.
func (c *Catalog) ScanAll(fullScan bool) ([]*models.Manga, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Manga{}, nil
		}
		return nil, fmt.Errorf("failed to list download root: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	util.SortNatural(names)

	mangas := make([]*models.Manga, 0, len(names))
	for _, name := range names {
		if m := c.scanDir(name, fullScan); m != nil {
			mangas = append(mangas, m)
		}
	}
	return mangas, nil
}

// ScanFolder builds the entry for one named folder. It returns
// ErrNotFound when the folder does not exist, and an error when the
// folder exists but yields no valid entry.
func (c *Catalog) ScanFolder(name string, fullScan bool) (*models.Manga, error) {
	info, err := os.Stat(filepath.Join(c.root, name))
	if err != nil || !info.IsDir() {
		return nil, ErrNotFound
	}
	m := c.scanDir(name, fullScan)
	if m == nil {
		return nil, fmt.Errorf("failed to parse manga folder %q", name)
	}
	return m, nil
}

// scanDir builds one entry. It returns nil when the folder has no
// chapter subfolders or cannot be listed; both are skips, not errors.
func (c *Catalog) scanDir(folderName string, fullScan bool) *models.Manga {
	mangaPath := filepath.Join(c.root, folderName)

	// Best-effort sidecar enrichment. A missing or unparsable sidecar
	// just leaves the folder-derived defaults in place.
	id, title, author := folderName, folderName, "Unknown"
	keywords := []string{}
	if side := readSidecar(mangaPath); side != nil {
		if side.ID != "" {
			id = side.ID
		}
		if side.Title != "" {
			title = side.Title
		}
		if side.Author != "" {
			author = side.Author
		}
		keywords = unionKeywords(side.Keywords, side.Tags)
	}

	entries, err := os.ReadDir(mangaPath)
	if err != nil {
		return nil
	}
	var chapterNames []string
	for _, e := range entries {
		if e.IsDir() {
			chapterNames = append(chapterNames, e.Name())
		}
	}
	if len(chapterNames) == 0 {
		return nil
	}
	util.SortNatural(chapterNames)

	encFolder := url.PathEscape(folderName)
	chapters := make([]models.Chapter, 0, len(chapterNames))
	coverURL := ""
	totalPages := 0

	for i, chName := range chapterNames {
		pages := []models.Page{}
		if fullScan || i == 0 {
			images := listImages(filepath.Join(mangaPath, chName))
			encChapter := url.PathEscape(chName)
			if !fullScan && i == 0 && len(images) > 0 {
				coverURL = FilesMount + "/" + encFolder + "/" + encChapter + "/" + url.PathEscape(images[0])
			}
			if fullScan {
				for _, img := range images {
					pages = append(pages, models.Page{
						Name: img,
						URL:  FilesMount + "/" + encFolder + "/" + encChapter + "/" + url.PathEscape(img),
					})
				}
				totalPages += len(pages)
			}
		}
		chapters = append(chapters, models.Chapter{ID: chName, Title: chName, Pages: pages})
	}

	return &models.Manga{
		ID:            id,
		Title:         title,
		CoverURL:      coverURL,
		Chapters:      chapters,
		TotalPages:    totalPages,
		SourceID:      folderName,
		IsFullDetails: fullScan,
		Author:        author,
		Keywords:      keywords,
		CollectionIDs: []string{},
	}
}

// CoverFile returns the on-disk path of the first image of the first
// chapter of the named folder.
func (c *Catalog) CoverFile(folderName string) (string, error) {
	mangaPath := filepath.Join(c.root, folderName)
	entries, err := os.ReadDir(mangaPath)
	if err != nil {
		return "", ErrNotFound
	}
	var chapterNames []string
	for _, e := range entries {
		if e.IsDir() {
			chapterNames = append(chapterNames, e.Name())
		}
	}
	if len(chapterNames) == 0 {
		return "", fmt.Errorf("no chapters in %q", folderName)
	}
	util.SortNatural(chapterNames)

	images := listImages(filepath.Join(mangaPath, chapterNames[0]))
	if len(images) == 0 {
		return "", fmt.Errorf("no cover image in %q", folderName)
	}
	return filepath.Join(mangaPath, chapterNames[0], images[0]), nil
}

// listImages lists recognized image files in a chapter folder in
// natural order. A folder that cannot be listed reads as empty.
func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, e.Name())
		}
	}
	util.SortNatural(images)
	return images
}

// readSidecar parses the details file inside a manga folder, returning
// nil when absent or unparsable.
func readSidecar(mangaPath string) *models.AlbumDetails {
	data, err := os.ReadFile(filepath.Join(mangaPath, SidecarFilename))
	if err != nil {
		return nil
	}
	var details models.AlbumDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil
	}
	return &details
}

// unionKeywords merges the sidecar's keywords and tags, deduplicated,
// preserving order of first appearance.
func unionKeywords(keywords, tags []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, kw := range append(append([]string{}, keywords...), tags...) {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
