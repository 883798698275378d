package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show this client's local decision journal",
	Long: `Show the decisions this machine made (checks, initiations, cancellations,
completions), newest first. The journal is local-only and never synced.`,
	Run: runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "Maximum entries to show")
}

func runLog(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	entries, err := c.Journal.Recent(logLimit)
	if err != nil {
		exitError("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries.")
		return
	}

	cyan := color.New(color.FgCyan)
	for _, e := range entries {
		cyan.Printf("%s", e.Timestamp.Format(time.RFC3339))
		fmt.Printf("  %-8s", e.Op)
		if e.SwapUUID != "" {
			fmt.Printf("  %s", shortID(e.SwapUUID))
		}
		if e.Status != "" {
			fmt.Printf("  %s", e.Status)
		}
		if e.Detail != "" {
			fmt.Printf("  (%s)", e.Detail)
		}
		fmt.Println()
	}
}

// shortID returns first 8 characters of an ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
