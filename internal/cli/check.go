package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/core"
	"github.com/edvartis/swapsync/internal/journal"
)

var checkCached bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether this client must perform a swap",
	Long: `Read the canonical swap document and decide whether a migration is
required right now. By default the local cache's swap state is bypassed and
the document is read fresh, as on project open; --cached trusts the cached
copy refined by the current worktree state.

The local cache is re-validated and cleaned up as a side effect.`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkCached, "cached", false, "Trust the local cache instead of forcing a fresh read")
}

func runCheck(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	result, err := core.CheckSwapRequired(context.Background(), c.Store, c.Cache, core.CheckOptions{
		BypassCache:     !checkCached,
		Timestamp:       nowMillis(),
		SourceOriginURL: c.Config.ProjectURL,
	})
	if err != nil {
		exitError("%v", err)
	}

	printCheckResult(c, result)
}

func printCheckResult(c *cmdContext, result *core.CheckResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	switch {
	case !result.DocumentExists:
		yellow.Println("Swap state unknown: no metadata document found.")
		c.record(journal.OpCheck, "", "unknown", "metadata document missing")
	case result.Required:
		red.Println("Swap required: this repository has been migrated.")
		e := result.ActiveEntry
		fmt.Printf("  %s → %s\n", describeProject(e.OldProjectURL, e.OldProjectName), describeProject(e.NewProjectURL, e.NewProjectName))
		fmt.Printf("  initiated by %s", e.SwapInitiatedBy)
		if e.SwapReason != "" {
			fmt.Printf(": %s", e.SwapReason)
		}
		fmt.Println()
		fmt.Printf("  swap id: %s\n", e.ShortUUID())
		fmt.Printf("  %d user(s) completed\n", len(e.SwappedUsers))
		c.record(journal.OpCheck, e.SwapUUID, "required", "")
	case result.ActiveEntry != nil:
		fmt.Println("A swap is in progress toward this repository; no action required here.")
		c.record(journal.OpCheck, result.ActiveEntry.SwapUUID, "inbound", "")
	default:
		green.Println("No swap required.")
		c.record(journal.OpCheck, "", "none", "")
	}

	if result.HasPendingDownloads {
		yellow.Println("Pending transfer downloads recorded; local cache retained.")
	}
	if result.CacheDeleted {
		fmt.Println("Local swap cache removed (nothing left to do).")
	}
}

// describeProject prefers the URL, falling back to the bare name for
// remote-only repositories that were never cloned locally.
func describeProject(url, name string) string {
	if url == "" {
		return name
	}
	if name == "" {
		return url
	}
	return fmt.Sprintf("%s (%s)", name, url)
}
