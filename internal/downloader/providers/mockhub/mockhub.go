// A mock provider for development and testing purposes. It fabricates
// album metadata and writes placeholder page files into the
// destination folder without making any network calls.
package mockhub

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akari-dl/hondana/internal/models"
)

const (
	chapterCount    = 2
	pagesPerChapter = 3
)

// Minimal JPEG so downloaded placeholder pages decode as images.
var placeholderJPEG = []byte{
	0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00,
	0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9,
}

type MockhubProvider struct{}

func New() *MockhubProvider {
	return &MockhubProvider{}
}

func (p *MockhubProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "mockhub",
		Name: "Mockhub",
	}
}

func (p *MockhubProvider) FetchAlbum(id string) (*models.Album, error) {
	return &models.Album{
		ID:          id,
		Title:       fmt.Sprintf("Mock Album %s", id),
		Author:      "Mock Author",
		Keywords:    []string{"mock", "placeholder"},
		Tags:        []string{"test"},
		Description: fmt.Sprintf("A fabricated album for ID %s.", id),
		PageCount:   chapterCount * pagesPerChapter,
	}, nil
}

func (p *MockhubProvider) DownloadAlbum(id, destDir string, opts models.DownloadOptions) error {
	for ch := 1; ch <= chapterCount; ch++ {
		if err := p.writeChapter(filepath.Join(destDir, fmt.Sprintf("第%d话", ch)), opts); err != nil {
			return err
		}
	}
	return nil
}

func (p *MockhubProvider) DownloadPhoto(photoID, destDir string, opts models.DownloadOptions) error {
	return p.writeChapter(filepath.Join(destDir, fmt.Sprintf("photo-%s", photoID)), opts)
}

func (p *MockhubProvider) writeChapter(chapterDir string, opts models.DownloadOptions) error {
	if err := os.MkdirAll(chapterDir, 0755); err != nil {
		return fmt.Errorf("failed to create chapter folder: %w", err)
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = ".jpg"
	}
	for page := 1; page <= pagesPerChapter; page++ {
		name := fmt.Sprintf("%05d%s", page, suffix)
		if err := os.WriteFile(filepath.Join(chapterDir, name), placeholderJPEG, 0644); err != nil {
			return fmt.Errorf("failed to write page %s: %w", name, err)
		}
	}
	return nil
}

func (p *MockhubProvider) Search(query string) ([]models.AlbumSummary, error) {
	var results []models.AlbumSummary
	for i := 1; i <= 40; i++ {
		results = append(results, models.AlbumSummary{
			ID:    fmt.Sprintf("%06d", i),
			Title: fmt.Sprintf("%s - Result %d", query, i),
		})
	}
	return results, nil
}
