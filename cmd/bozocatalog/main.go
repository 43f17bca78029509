// bozocatalog: a content-addressed photo/media archival catalog engine.
// It indexes source media into a checksummed catalog, collects chosen
// representatives into a canonical store tree, cleans redundant stored
// duplicates, and verifies stored files against their recorded checksums.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Exit codes per the external-interfaces contract: 0 success, 1 operational
// errors (missing files, checksum mismatches, index errors), 2 usage errors.
const (
	exitSuccess    = 0
	exitOperational = 1
	exitUsage      = 2
)

func main() {
	root := &cobra.Command{
		Use:   "bozocatalog",
		Short: "Content-addressed photo/media archival catalog engine",
		Long: `bozocatalog builds and maintains a deduplicated, checksummed, priority-
ranked media library backed by a single JSON catalog file.

Subcommands map directly onto the catalog engine's algorithms:
  index    fold source files into the catalog (hash + metadata extraction)
  collect  copy chosen representatives into the canonical store tree
  clean    remove or de-list redundant lower-priority stored duplicates
  verify   re-hash stored files and cross-check against the catalog
  stats    print catalog size and health counters
  migrate  rehash the catalog under a new digest algorithm
`,
	}

	root.AddCommand(newIndexCmd())
	root.AddCommand(newCollectCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newInteractiveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// cancelOnInterrupt returns a context cancelled on SIGINT/SIGTERM, printing a
// colored notice the first time.
func cancelOnInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		color.New(color.FgRed, color.Bold).Println("\nInterrupted. Finishing in-flight work and exiting.")
		cancel()
	}()
	return ctx, cancel
}

func fatalf(code int, format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "[FATAL] "+format+"\n", args...)
	os.Exit(code)
}

func okf(format string, args ...any) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

func warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}
