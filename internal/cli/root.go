// Package cli implements the command-line interface for swapsync.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/cache"
	"github.com/edvartis/swapsync/internal/config"
	"github.com/edvartis/swapsync/internal/docstore"
	"github.com/edvartis/swapsync/internal/journal"
)

// cmdContext holds common resources for CLI commands.
type cmdContext struct {
	Config  *config.Config
	Store   docstore.Store
	Cache   *cache.Coordinator
	Journal *journal.Journal
}

// Close releases resources held by cmdContext.
func (c *cmdContext) Close() {
	if c.Journal != nil {
		c.Journal.Close()
	}
}

// initContext loads config and wires the document store and cache
// coordinator. No journal.
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	return &cmdContext{
		Config: cfg,
		Store:  docstore.NewFileStore(cfg.MetadataDocPath()),
		Cache:  cache.NewCoordinator(cfg.CachePath()),
	}
}

// initFullContext additionally opens the decision journal.
func initFullContext() *cmdContext {
	c := initContext()

	j, err := journal.Open(c.Config.JournalPath())
	if err != nil {
		exitError("failed to open journal: %v", err)
	}
	c.Journal = j

	return c
}

var rootCmd = &cobra.Command{
	Use:   "swapsync",
	Short: "Project swap coordination over git-synchronized metadata",
	Long: `swapsync coordinates migrating a collaboratively-edited project from one
hosted git repository to another while many clients pull and push the same
metadata document asynchronously and offline-first. It decides whether a
swap is required, tracks who has completed it, and keeps every client's view
convergent without a central coordinator.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initiateCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(logCmd)
}

// exitError prints an error and exits.
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// nowMillis is the logical timestamp source for CLI-triggered writes.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// record appends to the journal, tolerating a nil journal.
func (c *cmdContext) record(op journal.Op, swapUUID, status, detail string) {
	if c.Journal == nil {
		return
	}
	if err := c.Journal.Record(op, swapUUID, status, detail); err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal write failed: %v\n", err)
	}
}
