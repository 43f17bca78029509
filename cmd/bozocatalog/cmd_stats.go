package main

import (
	"fmt"

	"bozocatalog/internal/sizefmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print catalog size and health counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" {
				return fmt.Errorf("--catalog is required")
			}
			doc := loadExisting(catalogPath)
			s := doc.Catalog.Stats()

			color.New(color.FgCyan, color.Bold).Println("Catalog summary")
			fmt.Printf("  uids:            %d\n", s.UIDCount)
			fmt.Printf("  records:         %d\n", s.RecordCount)
			fmt.Printf("  stored:          %d\n", s.StoredCount)
			fmt.Printf("  stored bytes:    %s\n", sizefmt.SizeOf(s.TotalStoredBytes))
			fmt.Printf("  hash algorithm:  %s\n", doc.Catalog.HashAlgorithm)
			fmt.Printf("  schema version:  %d\n", doc.Catalog.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog file (required)")
	return cmd
}
