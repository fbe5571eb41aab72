package util

import (
	"fmt"
	"strings"
)

// ValidateMangaName rejects folder names that could escape the download
// root when joined onto it. Names arrive from clients, so anything that
// looks like a path separator or a traversal marker is refused outright.
func ValidateMangaName(name string) error {
	if name == "" {
		return fmt.Errorf("manga name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("manga name contains directory traversal")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("manga name contains path separators")
	}
	return nil
}
