// Data structures shared across the scanner, the cache, the downloader
// and the API layer. A Manga is always derived from the filesystem at
// request time; only the metadata overlay is persisted.

package models

// Page is a single image file inside a chapter folder. URL is a
// percent-encoded path under the static file mount, built from the
// on-disk folder names.
type Page struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Chapter is an immediate subfolder of a manga folder. ID and Title both
// carry the folder name; there is no separate display title. Pages is
// only populated for full-detail scans.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// Manga is one merged library entry. ID comes from the sidecar details
// file when present, otherwise the folder name. SourceID is always the
// literal folder name and stays stable across metadata ID remaps.
type Manga struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CoverURL      string    `json:"coverUrl"`
	Chapters      []Chapter `json:"chapters"`
	TotalPages    int       `json:"totalPages"`
	SourceID      string    `json:"sourceId"`
	IsFullDetails bool      `json:"isFullDetails"`
	Author        string    `json:"author"`
	Keywords      []string  `json:"keywords"`

	// Overlay fields, populated from the metadata store.
	ReadCount     int      `json:"readCount"`
	IsPinned      bool     `json:"isPinned"`
	LastReadAt    float64  `json:"lastReadAt"`
	CollectionIDs []string `json:"collectionIds"`
}

// AlbumDetails mirrors the sidecar details file ("xiangxi.txt") written
// next to a downloaded manga's chapter folders.
type AlbumDetails struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Keywords     []string `json:"keywords"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	TotalPages   int      `json:"total_pages"`
	DownloadedAt int64    `json:"downloaded_at"`
}
