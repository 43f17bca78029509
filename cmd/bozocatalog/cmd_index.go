package main

import (
	"fmt"
	"os"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/indexer"
	"bozocatalog/internal/mediatype"
	"bozocatalog/internal/metadata"
	"bozocatalog/internal/report"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var catalogPath, source, algoFlag, storageFlag, tzDefault, exiftoolPath, reportPath string
	var priority int

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Fold source media into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" || catalogPath == "" {
				return fmt.Errorf("--src and --catalog are required")
			}
			algo, err := parseAlgorithm(algoFlag)
			if err != nil {
				fatalf(exitUsage, "%v", err)
			}
			storageType, err := parseStorageType(storageFlag)
			if err != nil {
				fatalf(exitUsage, "%v", err)
			}
			if !mediatype.ToolAvailable(exiftoolPath) {
				warnf("metadata tool %q not found on PATH; files will get no datetime and fail to index", exiftoolPath)
			}

			doc, err := openOrCreate(catalogPath, algo, tzDefault)
			if err != nil {
				fatalf(exitOperational, "%v", err)
			}
			if doc.Catalog.HashAlgorithm != algo {
				fatalf(exitUsage, "catalog %s already uses %s; use 'migrate' to switch algorithms", catalogPath, doc.Catalog.HashAlgorithm)
			}

			paths, walkErrs := walkSources(source)
			for _, e := range walkErrs {
				warnf("walk: %v", e)
			}

			ctx, cancel := cancelOnInterrupt()
			defer cancel()

			bar := progressbar.NewOptions(len(paths),
				progressbar.OptionSetDescription("Indexing"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionClearOnFinish(),
			)

			records := indexer.Index(ctx, paths, indexer.Options{
				Algorithm:       algo,
				StorageType:     storageType,
				Priority:        priority,
				TimezoneDefault: tzDefault,
				MetadataTool:    metadata.Tool{ExecPath: exiftoolPath},
			})
			bar.Add(len(paths))

			var toAdd []*catalog.PhotoRecord
			var rows []report.Row
			for i, r := range records {
				if r == nil {
					rows = append(rows, report.Row{Path: paths[i], Status: report.StatusError, Details: "could not index"})
					continue
				}
				toAdd = append(toAdd, r)
			}
			stats := doc.Catalog.AddMany(toAdd)
			for _, r := range toAdd {
				rows = append(rows, report.Row{Path: r.Src, Status: report.StatusIndexed, Size: r.Fsz})
			}

			mustSave(doc, fmt.Sprintf("index --src %s", source))

			color.New(color.FgGreen).Printf("Indexed: %d new, %d merged, %d skipped\n", stats.AddedNew, stats.MergedExisting, stats.Skipped)
			if reportPath != "" {
				if err := report.Write(reportPath, report.Summary{Operation: "index", Rows: rows}); err != nil {
					warnf("report: %v", err)
				} else {
					okf("report written: %s", reportPath)
				}
			}
			if len(walkErrs) > 0 {
				os.Exit(exitOperational)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog file (required)")
	cmd.Flags().StringVar(&source, "src", "", "directory to scan for source media (required)")
	cmd.Flags().StringVar(&algoFlag, "algo", "sha256", "hash algorithm: sha256, blake2b-256, blake3")
	cmd.Flags().StringVar(&storageFlag, "storage", "ssd", "backing storage type: ssd, raid, hdd")
	cmd.Flags().StringVar(&tzDefault, "tz-default", "local", `timezone default when a datetime carries no offset ("local" or "+HHMM")`)
	cmd.Flags().StringVar(&exiftoolPath, "exiftool", "exiftool", "path to the metadata tool executable")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority assigned to newly indexed records (lower wins)")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write an HTML report")
	return cmd
}
