package models

// ProviderInfo contains static information about a provider.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Album is the remote metadata for a single album, as returned by a
// provider before any pages are downloaded.
type Album struct {
	ID          string   `json:"album_id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Keywords    []string `json:"keywords"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	PageCount   int      `json:"page_count"`
}

// AlbumSummary is a single search hit.
type AlbumSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DownloadOptions is the configuration passed through to a provider's
// internal download machinery. An empty Suffix means the original image
// format is kept.
type DownloadOptions struct {
	Suffix      string `json:"suffix"`
	ThreadCount int    `json:"thread_count"`
}

// Provider defines the contract every content source must implement.
// The orchestrator treats it as an opaque capability: how a provider
// talks to its site, retries, or decodes images is its own business.
type Provider interface {
	GetInfo() ProviderInfo
	FetchAlbum(id string) (*Album, error)
	DownloadAlbum(id, destDir string, opts DownloadOptions) error
	DownloadPhoto(photoID, destDir string, opts DownloadOptions) error
	Search(query string) ([]AlbumSummary, error)
}
