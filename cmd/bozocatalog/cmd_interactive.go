package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/clean"
	"bozocatalog/internal/collect"
	"bozocatalog/internal/indexer"
	"bozocatalog/internal/metadata"
	"bozocatalog/internal/verify"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/sqweek/dialog"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Walk through an index + collect + clean + verify run with prompts",
		Run: func(cmd *cobra.Command, args []string) {
			runInteractive()
		},
	}
}

func printBanner() {
	banner := `
  _                     _           _
 | |                   | |         | |
 | |__   ___ _______ __| | ___ __ _| |_ __ _ _ __
 | '_ \ / _ \_  / _ \/ _' |/ __/ _' | __/ _' | '_ \
 | |_) | (_) / / (_) | (_| | (_| (_| | || (_| | | | |
 |_.__/ \___/___\___/\__,_|\___\__,_|\__\__,_|_| |_|
`
	color.New(color.FgCyan, color.Bold).Println(banner)
}

// pickDirectory opens a native folder picker when a display is available,
// falling back to a validated text prompt otherwise.
func pickDirectory(label string) string {
	if os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" {
		if dir, err := dialog.Directory().Title(label).Browse(); err == nil {
			if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
				return dir
			}
		}
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			info, err := os.Stat(input)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("not a valid directory")
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err == promptui.ErrInterrupt {
		color.New(color.FgRed, color.Bold).Println("\nInterrupted. Exiting cleanly.")
		os.Exit(130)
	} else if err != nil {
		fatalf(exitUsage, "prompt failed: %v", err)
	}
	return value
}

func runInteractive() {
	printBanner()
	color.New(color.FgWhite).Println("This walks through indexing new media, collecting it into the store,")
	color.New(color.FgWhite).Println("cleaning redundant copies, and verifying what's on disk.")
	fmt.Println()

	source := pickDirectory("Source directory (where new media currently lives)")
	store := pickDirectory("Store directory (the canonical archive tree)")
	catalogPath := filepath.Join(store, "catalog.json")

	algoSelect := promptui.Select{
		Label: "Hash algorithm (only matters for a brand-new catalog)",
		Items: []string{"sha256", "blake2b-256", "blake3"},
	}
	_, algoStr, err := algoSelect.Run()
	if err != nil {
		fatalf(exitUsage, "prompt failed: %v", err)
	}
	algo, _ := parseAlgorithm(algoStr)

	doc, err := openOrCreate(catalogPath, algo, "local")
	if err != nil {
		fatalf(exitOperational, "%v", err)
	}

	ctx, cancel := cancelOnInterrupt()
	defer cancel()

	color.New(color.FgCyan, color.Bold).Println("\nIndexing...")
	paths, walkErrs := walkSources(source)
	for _, e := range walkErrs {
		warnf("walk: %v", e)
	}
	records := indexer.Index(ctx, paths, indexer.Options{
		Algorithm:       doc.Catalog.HashAlgorithm,
		StorageType:     indexer.SSD,
		TimezoneDefault: doc.Catalog.TimezoneDefault,
		MetadataTool:    metadata.Tool{ExecPath: "exiftool"},
	})
	var toAdd []*catalog.PhotoRecord
	for _, r := range records {
		if r != nil {
			toAdd = append(toAdd, r)
		}
	}
	indexStats := doc.Catalog.AddMany(toAdd)
	color.New(color.FgGreen).Printf("Indexed %d new, %d merged\n", indexStats.AddedNew, indexStats.MergedExisting)

	color.New(color.FgCyan, color.Bold).Println("\nCollecting...")
	tasks, collectCounters := collect.Plan(doc.Catalog, store, nil)
	var copied int
	for _, t := range tasks {
		target := t.TargetRel
		if target == "" {
			target = t.Record.Sto
		}
		absDst := filepath.Join(store, target)
		if err := copyIntoStore(ctx, t.Record.Src, absDst); err != nil {
			warnf("copy failed for %s: %v", t.Record.Src, err)
			continue
		}
		collect.ApplyCopyResult(t)
		copied++
	}
	color.New(color.FgGreen).Printf("Copied %d, already stored %d, missed %d\n", copied, collectCounters.AlreadyStored, collectCounters.Missed)

	cleanPrompt := promptui.Select{Label: "Clean up redundant stored duplicates now?", Items: []string{"Yes", "No"}}
	_, doClean, _ := cleanPrompt.Run()
	if doClean == "Yes" {
		color.New(color.FgCyan, color.Bold).Println("\nCleaning...")
		removals, err := clean.Plan(doc.Catalog, store, "", false)
		if err != nil {
			warnf("clean: %v", err)
		} else {
			var removed int
			for _, r := range removals {
				abs := filepath.Join(store, r.Record.Sto)
				if err := removeFromStore(abs); err != nil {
					warnf("remove failed for %s: %v", abs, err)
					continue
				}
				r.Record.Sto = ""
				removed++
			}
			color.New(color.FgGreen).Printf("Removed %d\n", removed)
		}
	}

	mustSave(doc, "interactive run")

	verifyPrompt := promptui.Select{Label: "Verify stored files now?", Items: []string{"Yes", "No"}}
	_, doVerify, _ := verifyPrompt.Run()
	if doVerify == "Yes" {
		color.New(color.FgCyan, color.Bold).Println("\nVerifying...")
		results, err := verify.Verify(ctx, doc.Catalog, store, verify.Options{StorageType: indexer.SSD, RandomFraction: 1})
		if err != nil {
			warnf("verify: %v", err)
		} else {
			var correct, incorrect, missing int
			for _, r := range results {
				switch r.Classification {
				case verify.Correct:
					correct++
				case verify.Incorrect:
					incorrect++
				case verify.Missing:
					missing++
				}
			}
			color.New(color.FgGreen).Printf("Correct %d, ", correct)
			color.New(color.FgRed).Printf("incorrect %d, ", incorrect)
			color.New(color.FgYellow).Printf("missing %d\n", missing)
		}
	}

	okf("\nDone. Catalog: %s", catalogPath)
}
