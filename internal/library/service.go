// Service ties the catalog, the cache and the metadata overlay
// together and implements the listing, detail, delete and title-sync
// operations the API layer exposes.

package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akari-dl/hondana/internal/metadata"
	"github.com/akari-dl/hondana/internal/models"
	"github.com/akari-dl/hondana/internal/util"
)

type Service struct {
	catalog *Catalog
	cache   *Cache
	meta    *metadata.Store
}

func NewService(catalog *Catalog, cache *Cache, meta *metadata.Store) *Service {
	return &Service{catalog: catalog, cache: cache, meta: meta}
}

func (s *Service) Catalog() *Catalog { return s.catalog }
func (s *Service) Cache() *Cache     { return s.cache }

// Listing serves the merged library, from cache while fresh. A forced
// refresh clears the cache first; any miss triggers a full rescan.
func (s *Service) Listing(refresh bool) ([]*models.Manga, error) {
	if refresh {
		s.cache.Clear()
	}
	if data, ok := s.cache.Get(); ok {
		return data, nil
	}
	return s.Rebuild()
}

// Rebuild recomputes the merged listing from disk and caches it.
func (s *Service) Rebuild() ([]*models.Manga, error) {
	mangas, err := s.catalog.ScanAll(false)
	if err != nil {
		return nil, err
	}
	allMeta := s.meta.Load()
	for _, m := range mangas {
		ApplyMetadata(m, allMeta[m.ID])
	}
	s.cache.Set(mangas)
	return mangas, nil
}

// Detail performs a full scan of one folder merged with its metadata
// record. Detail views bypass the cache entirely.
func (s *Service) Detail(name string) (*models.Manga, error) {
	m, err := s.catalog.ScanFolder(name, true)
	if err != nil {
		return nil, err
	}
	ApplyMetadata(m, s.meta.Get(m.ID))
	return m, nil
}

// Delete removes a manga's directory tree by folder name and
// invalidates the cache. The caller is responsible for rejecting
// names with path separators before this point.
func (s *Service) Delete(name string) error {
	path := filepath.Join(s.catalog.Root(), name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return ErrNotFound
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	s.cache.Clear()
	return nil
}

// SyncTitles resynchronizes every manga's metadata title from its
// first chapter folder name. IDs resolve through the sidecar when one
// is present, matching how the listing resolves them.
func (s *Service) SyncTitles() (int, error) {
	entries, err := os.ReadDir(s.catalog.Root())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list download root: %w", err)
	}

	var updates []metadata.Record
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		mangaPath := filepath.Join(s.catalog.Root(), e.Name())

		targetID := e.Name()
		if side := readSidecar(mangaPath); side != nil && side.ID != "" {
			targetID = side.ID
		}

		subEntries, err := os.ReadDir(mangaPath)
		if err != nil {
			continue
		}
		var chapterNames []string
		for _, sub := range subEntries {
			if sub.IsDir() {
				chapterNames = append(chapterNames, sub.Name())
			}
		}
		if len(chapterNames) == 0 {
			continue
		}
		util.SortNatural(chapterNames)
		updates = append(updates, metadata.Record{"id": targetID, "title": chapterNames[0]})
	}

	count, err := s.meta.UpsertBatch(updates)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.cache.Clear()
	}
	return count, nil
}
