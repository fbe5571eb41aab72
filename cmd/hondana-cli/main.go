// Command hondana-cli offers offline library maintenance against the
// same download root and metadata file the server uses.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/akari-dl/hondana/internal/config"
	"github.com/akari-dl/hondana/internal/library"
	"github.com/akari-dl/hondana/internal/metadata"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hondana-cli",
		Short:         "Manga library maintenance utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newScanCommand())
	root.AddCommand(newSyncNamesCommand())

	return root
}

// newLibraryService builds the library stack from the on-disk
// configuration, sharing paths with the server.
func newLibraryService() (*library.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	catalog := library.NewCatalog(cfg.Library.Path)
	cache := library.NewCache(time.Duration(cfg.CacheTTL) * time.Second)
	meta := metadata.NewStore(cfg.Metadata.Path)
	return library.NewService(catalog, cache, meta), cfg, nil
}

func newScanCommand() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the download root and print the merged library as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newLibraryService()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Scanning library at: %s\n", cfg.Library.Path)

			mangas, err := svc.Listing(true)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if full {
				for i, m := range mangas {
					detail, err := svc.Detail(m.SourceID)
					if err != nil {
						return fmt.Errorf("failed to scan %q: %w", m.SourceID, err)
					}
					mangas[i] = detail
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(mangas); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Found %d manga folder(s).\n", len(mangas))
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include per-chapter page listings")

	return cmd
}

func newSyncNamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-names",
		Short: "Resync metadata titles from each manga's first chapter folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newLibraryService()
			if err != nil {
				return err
			}
			count, err := svc.SyncTitles()
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d title(s) into %s\n",
				count, filepath.Clean(cfg.Metadata.Path))
			return nil
		},
	}
}
