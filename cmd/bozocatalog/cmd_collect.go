package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bozocatalog/internal/collect"
	"bozocatalog/internal/diskspace"
	"bozocatalog/internal/report"
	"bozocatalog/internal/sizefmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newCollectCmd() *cobra.Command {
	var catalogPath, store, reportPath string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Copy chosen representatives into the canonical store tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" || store == "" {
				return fmt.Errorf("--catalog and --store are required")
			}

			doc := loadExisting(catalogPath)

			tasks, counters := collect.Plan(doc.Catalog, store, nil)

			var needed uint64
			for _, t := range tasks {
				needed += uint64(t.Record.Fsz)
			}
			if free, err := diskspace.FreeBytes(store); err == nil && needed > free {
				warnf("estimated copy size %s exceeds %s free at %s", sizefmt.SizeOf(int64(needed)), sizefmt.SizeOf(int64(free)), store)
			}

			ctx, cancel := cancelOnInterrupt()
			defer cancel()

			bar := progressbar.NewOptions(len(tasks),
				progressbar.OptionSetDescription("Collecting"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			var rows []report.Row
			var copied, failed int
			for _, t := range tasks {
				if ctx.Err() != nil {
					break
				}
				target := t.TargetRel
				if target == "" {
					target = t.Record.Sto
				}
				absDst := filepath.Join(store, target)
				if err := copyIntoStore(ctx, t.Record.Src, absDst); err != nil {
					rows = append(rows, report.Row{Path: t.Record.Src, Dest: absDst, Status: report.StatusError, Details: err.Error()})
					failed++
					bar.Add(1)
					continue
				}
				collect.ApplyCopyResult(t)
				rows = append(rows, report.Row{Path: t.Record.Src, Dest: absDst, Status: report.StatusCopied, Size: t.Record.Fsz})
				copied++
				bar.Add(1)
			}

			mustSave(doc, fmt.Sprintf("collect --store %s", store))

			color.New(color.FgGreen).Printf("Copied: %d, ", copied)
			color.New(color.FgBlue).Printf("already stored: %d, missed: %d\n", counters.AlreadyStored, counters.Missed)
			if failed > 0 {
				warnf("%d copy failures", failed)
			}
			if reportPath != "" {
				if err := report.Write(reportPath, report.Summary{Operation: "collect", Rows: rows}); err != nil {
					warnf("report: %v", err)
				} else {
					okf("report written: %s", reportPath)
				}
			}
			if failed > 0 || counters.Missed > 0 {
				os.Exit(exitOperational)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the catalog file (required)")
	cmd.Flags().StringVar(&store, "store", "", "canonical store directory (required)")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write an HTML report")
	return cmd
}
