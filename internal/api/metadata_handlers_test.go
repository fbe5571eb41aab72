package api_test

import (
	"net/http"
	"testing"

	"github.com/akari-dl/hondana/internal/models"
	"github.com/akari-dl/hondana/internal/testutil"
)

func TestUpdateMetadata(t *testing.T) {
	app, ts := testutil.SetupTestServer(t)
	testutil.CreateChapter(t, app.Config.Library.Path, "A", "ch1", "p.jpg")

	// Prime the cache so the update's invalidation is observable.
	var before struct {
		Mangas []models.Manga `json:"mangas"`
	}
	getJSON(t, ts.URL+"/api/library", &before)
	if before.Mangas[0].Title != "A" {
		t.Fatalf("unexpected initial title %q", before.Mangas[0].Title)
	}

	var body map[string]any
	resp := postJSON(t, ts.URL+"/api/metadata", map[string]any{
		"id":       "A",
		"title":    "Renamed",
		"isPinned": true,
	}, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}
	rec, ok := body["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("missing metadata in response: %v", body)
	}
	if _, hasID := rec["id"]; hasID {
		t.Error("id key must not be stored in the record")
	}
	if rec["title"] != "Renamed" {
		t.Errorf("unexpected stored record %v", rec)
	}

	var after struct {
		Mangas []models.Manga `json:"mangas"`
	}
	getJSON(t, ts.URL+"/api/library", &after)
	if after.Mangas[0].Title != "Renamed" || !after.Mangas[0].IsPinned {
		t.Errorf("listing should reflect the update immediately: %+v", after.Mangas[0])
	}
}

func TestUpdateMetadataMissingID(t *testing.T) {
	_, ts := testutil.SetupTestServer(t)
	resp := postJSON(t, ts.URL+"/api/metadata", map[string]any{"title": "x"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateMetadataBatch(t *testing.T) {
	_, ts := testutil.SetupTestServer(t)

	var body map[string]any
	resp := postJSON(t, ts.URL+"/api/metadata/batch", map[string]any{
		"updates": []map[string]any{
			{"id": "1", "title": "One"},
			{"id": "2", "readCount": 5},
			{"title": "no id, skipped"},
		},
	}, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["updated"] != float64(2) {
		t.Errorf("expected 2 applied updates, got %v", body["updated"])
	}

	var rec map[string]any
	getJSON(t, ts.URL+"/api/metadata/2", &rec)
	if rec["readCount"] != float64(5) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestGetMetadataAbsentID(t *testing.T) {
	_, ts := testutil.SetupTestServer(t)
	var rec map[string]any
	resp := getJSON(t, ts.URL+"/api/metadata/unknown", &rec)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(rec) != 0 {
		t.Errorf("expected empty record, got %v", rec)
	}
}

func TestSyncNames(t *testing.T) {
	app, ts := testutil.SetupTestServer(t)
	root := app.Config.Library.Path
	testutil.CreateChapter(t, root, "A", "ch10", "p.jpg")
	testutil.CreateChapter(t, root, "A", "ch2", "p.jpg")

	var body map[string]int
	resp := postJSON(t, ts.URL+"/api/metadata/sync-names", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["count"] != 1 {
		t.Errorf("expected 1 synced title, got %d", body["count"])
	}

	var rec map[string]any
	getJSON(t, ts.URL+"/api/metadata/A", &rec)
	if rec["title"] != "ch2" {
		t.Errorf("expected first chapter in natural order as title, got %v", rec["title"])
	}
}
