// The download orchestrator. A batch of album IDs runs on one detached
// goroutine, strictly sequentially: fetch remote metadata, persist the
// sidecar, make the title visible to pollers, then hand the actual
// page download to the provider. No single item's failure may stop the
// rest of the batch.

package downloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akari-dl/hondana/internal/downloader/providers"
	"github.com/akari-dl/hondana/internal/library"
	"github.com/akari-dl/hondana/internal/logbuf"
	"github.com/akari-dl/hondana/internal/metadata"
	"github.com/akari-dl/hondana/internal/models"
	"github.com/akari-dl/hondana/internal/settings"
	"github.com/akari-dl/hondana/internal/util"
)

// Orchestrator owns the background download pipeline. It mutates the
// same filesystem the catalog reads and invalidates the library cache
// as items complete.
type Orchestrator struct {
	root       string
	providerID string
	meta       *metadata.Store
	cache      *library.Cache
	logs       *logbuf.Buffer
	settings   *settings.Service
}

func NewOrchestrator(root, providerID string, meta *metadata.Store, cache *library.Cache, logs *logbuf.Buffer, st *settings.Service) *Orchestrator {
	return &Orchestrator{
		root:       root,
		providerID: providerID,
		meta:       meta,
		cache:      cache,
		logs:       logs,
		settings:   st,
	}
}

// RunBatch starts the batch on a detached worker and returns
// immediately. Completion is observed through the log buffer and the
// library cache, never through a return value.
func (o *Orchestrator) RunBatch(albumIDs []string, override *models.DownloadOptions) {
	go o.runBatch(albumIDs, override)
}

func (o *Orchestrator) runBatch(albumIDs []string, override *models.DownloadOptions) {
	// The worker outlives the HTTP request; nothing may crash the
	// hosting process from here.
	defer func() {
		if r := recover(); r != nil {
			o.logs.Appendf("Fatal error in download worker: %v", r)
		}
	}()

	provider, ok := providers.Get(o.providerID)
	if !ok {
		o.logs.Appendf("Download batch aborted: provider %q is not registered", o.providerID)
		return
	}

	opts := o.resolveOptions(override)
	for _, raw := range albumIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		o.processItem(provider, id, opts)
	}

	o.cache.Clear()
	o.logs.Append("[BATCH_DONE] All items processed, library cache cleared.")
}

// resolveOptions falls back to the persisted download settings when
// the request carried no override.
func (o *Orchestrator) resolveOptions(override *models.DownloadOptions) models.DownloadOptions {
	if override != nil {
		return *override
	}
	suffix, threads := o.settings.DownloadDefaults()
	return models.DownloadOptions{Suffix: suffix, ThreadCount: threads}
}

// processItem handles one album ID, fully independent of the others'
// success or failure.
func (o *Orchestrator) processItem(provider models.Provider, id string, opts models.DownloadOptions) {
	defer func() {
		if r := recover(); r != nil {
			o.logs.Appendf("%s: failed: %v", id, r)
		}
	}()

	o.logs.Appendf("Processing ID %s ...", id)

	// The ID becomes the destination folder name; refuse anything that
	// could land outside the download root.
	if err := util.ValidateMangaName(id); err != nil {
		o.logs.Appendf("%s: invalid ID, skipped: %v", id, err)
		return
	}
	destDir := filepath.Join(o.root, id)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		o.logs.Appendf("%s: failed: %v", id, err)
		return
	}

	var err error
	if strings.HasPrefix(strings.ToLower(id), "p") {
		err = provider.DownloadPhoto(id[1:], destDir, opts)
	} else {
		o.logs.Appendf("Fetching metadata for %s ...", id)
		if ferr := o.fetchAndPersistDetails(provider, id, destDir); ferr != nil {
			// Metadata is an enrichment; the content fetch is still
			// attempted.
			o.logs.Appendf("Metadata fetch failed for %s: %v", id, ferr)
		}
		err = provider.DownloadAlbum(id, destDir, opts)
	}

	if err != nil {
		o.logs.Appendf("%s: failed: %v", id, err)
		return
	}
	o.logs.Appendf("%s: download complete", id)
}

// fetchAndPersistDetails fetches remote metadata, writes the sidecar
// details file, and upserts the title into the metadata store so it
// becomes visible to pollers before the (potentially long) content
// fetch completes.
func (o *Orchestrator) fetchAndPersistDetails(provider models.Provider, id, destDir string) error {
	album, err := provider.FetchAlbum(id)
	if err != nil {
		return err
	}

	author := album.Author
	if author == "" {
		author = "Unknown"
	}
	details := models.AlbumDetails{
		ID:           album.ID,
		Title:        album.Title,
		Author:       author,
		Keywords:     album.Keywords,
		Tags:         album.Tags,
		Description:  album.Description,
		TotalPages:   album.PageCount,
		DownloadedAt: time.Now().Unix(),
	}
	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}
	sidecarPath := filepath.Join(destDir, library.SidecarFilename)
	if err := os.WriteFile(sidecarPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write details file: %w", err)
	}

	if _, err := o.meta.Upsert(id, metadata.Record{"title": album.Title}); err != nil {
		return fmt.Errorf("failed to update metadata store: %w", err)
	}
	o.cache.Clear()

	o.logs.Appendf("Metadata saved: %s", sidecarPath)
	return nil
}
