// Persisted user settings: a two-section JSON document ("app" for
// client preferences, "download" for the downloader defaults). Loads
// always merge saved values over the defaults so new keys appear for
// old files.

package settings

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// Service guards the settings file with its own lock, independent of
// the metadata store.
type Service struct {
	mu   sync.Mutex
	path string
}

func NewService(path string) *Service {
	return &Service{path: path}
}

// Defaults returns the built-in settings document.
func Defaults() map[string]map[string]any {
	return map[string]map[string]any{
		"app": {
			"theme":                 "fresh",
			"enableScrollTurn":      false,
			"panicKey":              "F12",
			"readerBackgroundColor": "#0f172a",
			"longPressDuration":     200,
			"toggleMenuKey":         "m",
			"enableDownloadPopup":   true,
			"collections":           []any{},
		},
		"download": {
			"suffix":       ".jpg",
			"thread_count": 3,
		},
	}
}

// Load reads the settings file and overlays it on the defaults. A
// missing or unparsable file yields the defaults.
func (s *Service) Load() map[string]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Service) loadLocked() map[string]map[string]any {
	merged := Defaults()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading settings file %s: %v", s.path, err)
		}
		return merged
	}
	var saved map[string]map[string]any
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("Error parsing settings file %s: %v", s.path, err)
		return merged
	}
	for section, values := range saved {
		if _, known := merged[section]; !known {
			merged[section] = map[string]any{}
		}
		for k, v := range values {
			merged[section][k] = v
		}
	}
	return merged
}

// Update merges the patch section-wise over the current settings and
// persists the result, returning the new document.
func (s *Service) Update(patch map[string]map[string]any) (map[string]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.loadLocked()
	for section, values := range patch {
		if _, known := current[section]; !known {
			current[section] = map[string]any{}
		}
		for k, v := range values {
			current[section][k] = v
		}
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, err
	}
	return current, nil
}

// DownloadDefaults returns the persisted downloader configuration,
// used when a batch request carries no override.
func (s *Service) DownloadDefaults() (suffix string, threadCount int) {
	dl := s.Load()["download"]
	suffix, _ = dl["suffix"].(string)
	switch v := dl["thread_count"].(type) {
	case int:
		threadCount = v
	case float64:
		threadCount = int(v)
	}
	if threadCount <= 0 {
		threadCount = 3
	}
	return suffix, threadCount
}
