package main

import (
	"fmt"
	"path/filepath"

	"bozocatalog/internal/report"
	"bozocatalog/internal/verify"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var catalogPath, store, subdir, storageFlag, reportPath string
	var randomFraction float64

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-hash stored files and cross-check against the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" || store == "" {
				return fmt.Errorf("--catalog and --store are required")
			}
			storageType, err := parseStorageType(storageFlag)
			if err != nil {
				fatalf(exitUsage, "%v", err)
			}

			doc := loadExisting(catalogPath)

			ctx, cancel := cancelOnInterrupt()
			defer cancel()

			results, err := verify.Verify(ctx, doc.Catalog, store, verify.Options{
				StorageType:    storageType,
				RandomFraction: randomFraction,
				Subdir:         subdir,
			})
			if err != nil {
				fatalf(exitOperational, "%v", err)
			}

			var rows []report.Row
			var correct, incorrect, missing int
			for _, r := range results {
				abs := filepath.Join(store, r.Record.Sto)
				switch r.Classification {
				case verify.Correct:
					correct++
					rows = append(rows, report.Row{Path: abs, Status: report.StatusCorrect, Size: r.Record.Fsz})
				case verify.Incorrect:
					incorrect++
					rows = append(rows, report.Row{Path: abs, Status: report.StatusIncorrect, Details: fmt.Sprintf("expected %s, got %s", r.Record.Chk, r.ActualChk)})
				case verify.Missing:
					missing++
					rows = append(rows, report.Row{Path: abs, Status: report.StatusMissing})
				}
			}

			color.New(color.FgGreen).Printf("Correct: %d, ", correct)
			color.New(color.FgRed).Printf("incorrect: %d, ", incorrect)
			color.New(color.FgYellow).Printf("missing: %d\n", missing)

			if reportPath != "" {
				if err := report.Write(reportPath, report.Summary{Operation: "verify", Rows: rows}); err != nil {
					warnf("report: %v", err)
				} else {
					okf("report written: %s", reportPath)
				}
			}
			if incorrect > 0 || missing > 0 {
				fatalf(exitOperational, "verification found %d incorrect and %d missing files", incorrect, missing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog file (required)")
	cmd.Flags().StringVar(&store, "store", "", "canonical store directory (required)")
	cmd.Flags().StringVar(&subdir, "subdir", "", "restrict verification to this relative subdirectory of store")
	cmd.Flags().StringVar(&storageFlag, "storage", "ssd", "backing storage type: ssd, raid, hdd")
	cmd.Flags().Float64Var(&randomFraction, "sample", 1, "fraction of stored records to sample, in [0,1]")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write an HTML report")
	return cmd
}
