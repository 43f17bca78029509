package main

import (
	"fmt"
	"path/filepath"

	"bozocatalog/internal/clean"
	"bozocatalog/internal/report"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var catalogPath, store, subdir, reportPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove or de-list redundant lower-priority stored duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" || store == "" {
				return fmt.Errorf("--catalog and --store are required")
			}

			doc := loadExisting(catalogPath)

			removals, err := clean.Plan(doc.Catalog, store, subdir, dryRun)
			if err != nil {
				fatalf(exitUsage, "%v", err)
			}

			var rows []report.Row
			var removed, failed int
			for _, r := range removals {
				abs := filepath.Join(store, r.Record.Sto)
				if dryRun {
					rows = append(rows, report.Row{Path: abs, Status: report.StatusDeleted, Details: "dry run"})
					continue
				}
				if err := removeFromStore(abs); err != nil {
					rows = append(rows, report.Row{Path: abs, Status: report.StatusError, Details: err.Error()})
					failed++
					continue
				}
				r.Record.Sto = ""
				rows = append(rows, report.Row{Path: abs, Status: report.StatusDeleted})
				removed++
			}

			if !dryRun {
				mustSave(doc, fmt.Sprintf("clean --store %s --subdir %s", store, subdir))
			}

			color.New(color.FgGreen).Printf("Removed: %d, ", removed)
			color.New(color.FgBlue).Printf("scheduled: %d\n", len(removals))
			if failed > 0 {
				warnf("%d removal failures", failed)
			}
			if reportPath != "" {
				if err := report.Write(reportPath, report.Summary{Operation: "clean", Rows: rows}); err != nil {
					warnf("report: %v", err)
				} else {
					okf("report written: %s", reportPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog file (required)")
	cmd.Flags().StringVar(&store, "store", "", "canonical store directory (required)")
	cmd.Flags().StringVar(&subdir, "subdir", "", "restrict cleaning to this relative subdirectory of store")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan removals without deleting or de-listing anything")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write an HTML report")
	return cmd
}
