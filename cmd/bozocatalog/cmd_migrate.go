package main

import (
	"fmt"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/collect"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var catalogPath, store, algoFlag string
	var resyncNames bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rehash the catalog under a new digest algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" {
				return fmt.Errorf("--catalog is required")
			}
			newAlgo, err := parseAlgorithm(algoFlag)
			if err != nil {
				fatalf(exitUsage, "%v", err)
			}

			doc := loadExisting(catalogPath)
			if doc.Catalog.HashAlgorithm == newAlgo {
				okf("catalog already uses %s; nothing to do", newAlgo)
				return nil
			}

			ctx, cancel := cancelOnInterrupt()
			defer cancel()

			hashMap, err := catalog.BuildHashMap(ctx, doc.Catalog, newAlgo)
			if err != nil {
				fatalf(exitOperational, "%v", err)
			}
			rewritten, skipped := catalog.MapHashes(doc.Catalog, hashMap, newAlgo)

			color.New(color.FgGreen).Printf("Rewrote %d checksums, skipped %d unverifiable\n", rewritten, skipped)

			if resyncNames {
				if store == "" {
					fatalf(exitUsage, "--resync-names requires --store")
				}
				renamed, skippedNames, err := collect.ResyncStoredNames(doc.Catalog, store)
				if err != nil {
					fatalf(exitOperational, "%v", err)
				}
				color.New(color.FgGreen).Printf("Renamed %d stored files, left %d unchanged\n", renamed, skippedNames)
			}

			mustSave(doc, fmt.Sprintf("migrate --algo %s", newAlgo))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog file (required)")
	cmd.Flags().StringVar(&algoFlag, "algo", "", "new hash algorithm: sha256, blake2b-256, blake3 (required)")
	cmd.Flags().StringVar(&store, "store", "", "canonical store directory, required with --resync-names")
	cmd.Flags().BoolVar(&resyncNames, "resync-names", false, "rename stored files to embed the new checksum prefix")
	return cmd
}
