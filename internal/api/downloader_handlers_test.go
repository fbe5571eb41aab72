package api_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/akari-dl/hondana/internal/core"
	"github.com/akari-dl/hondana/internal/testutil"
)

func waitForBatchDone(t *testing.T, app *core.App) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, line := range app.Logs.Snapshot() {
			if strings.Contains(line, "[BATCH_DONE]") {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("batch did not finish; logs: %v", app.Logs.Snapshot())
}

func TestDownloadBatch(t *testing.T) {
	app, ts := testutil.SetupTestServer(t)

	var body map[string]string
	resp := postJSON(t, ts.URL+"/api/download/batch", map[string]any{
		"album_ids": []string{"101", "102"},
	}, &body)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %v", resp.StatusCode, body)
	}
	if body["message"] != "Started 2 download task(s)" {
		t.Errorf("unexpected message %q", body["message"])
	}

	waitForBatchDone(t, app)

	// The downloaded albums appear in the next listing.
	mangas, err := app.Library.Listing(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(mangas) != 2 {
		t.Errorf("expected 2 downloaded albums in the library, got %d", len(mangas))
	}
}

func TestDownloadBatchEmpty(t *testing.T) {
	_, ts := testutil.SetupTestServer(t)
	resp := postJSON(t, ts.URL+"/api/download/batch", map[string]any{"album_ids": []string{}}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty batch, got %d", resp.StatusCode)
	}
}

func TestGetLogs(t *testing.T) {
	app, ts := testutil.SetupTestServer(t)
	app.Logs.Append("first")
	app.Logs.Append("second")

	var body map[string][]string
	resp := getJSON(t, ts.URL+"/api/logs", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	logs := body["logs"]
	if len(logs) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(logs))
	}
	// Most recent first.
	if !strings.HasSuffix(logs[0], "second") {
		t.Errorf("expected newest line first, got %v", logs)
	}
}

func TestSearch(t *testing.T) {
	_, ts := testutil.SetupTestServer(t)

	var body struct {
		Query   string           `json:"query"`
		Total   int              `json:"total"`
		Results []map[string]any `json:"results"`
	}
	resp := getJSON(t, ts.URL+"/api/search?q="+url.QueryEscape("test query"), &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Query != "test query" {
		t.Errorf("query not echoed, got %q", body.Query)
	}
	if body.Total != 30 || len(body.Results) != 30 {
		t.Errorf("expected results capped at 30, got total=%d len=%d", body.Total, len(body.Results))
	}
}

func TestSearchMissingQuery(t *testing.T) {
	_, ts := testutil.SetupTestServer(t)
	resp := getJSON(t, ts.URL+"/api/search", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchUnknownProviderDegrades(t *testing.T) {
	app, ts := testutil.SetupTestServer(t)
	app.Config.Provider = "ghost"

	var body map[string]any
	resp := getJSON(t, ts.URL+"/api/search?q=x", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with error field, got %d", resp.StatusCode)
	}
	if body["error"] == nil || body["total"] != float64(0) {
		t.Errorf("expected degraded empty result, got %v", body)
	}
}
