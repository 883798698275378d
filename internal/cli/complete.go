package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/core"
	"github.com/edvartis/swapsync/internal/journal"
)

var completeSwapID string

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Record that this user has performed the migration",
	Long: `Mark the current user's completion record executed on the active swap.

Canonical state is re-read immediately before recording: if the swap was
cancelled or superseded since this client was prompted, nothing is written
and the command reports the abort. Run this after the transfer executor has
actually moved the project contents.`,
	Run: runComplete,
}

func init() {
	completeCmd.Flags().StringVar(&completeSwapID, "swap", "", "Swap id the user was prompted about (defaults to the active swap)")
}

func runComplete(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()
	ctx := context.Background()

	expected := completeSwapID
	if expected == "" {
		result, err := core.CheckSwapRequired(ctx, c.Store, c.Cache, core.CheckOptions{
			BypassCache:     true,
			Timestamp:       nowMillis(),
			SourceOriginURL: c.Config.ProjectURL,
		})
		if err != nil {
			exitError("%v", err)
		}
		if result.ActiveEntry == nil {
			exitError("no active swap to complete")
		}
		expected = result.ActiveEntry.SwapUUID
	} else {
		expected = resolveSwapUUID(c, expected)
	}

	// Time passed between prompting and acting; the swap may have been
	// cancelled or replaced in that window.
	entry, ok, err := core.RevalidateBeforeExecute(ctx, c.Store, expected)
	if err != nil {
		exitError("%v", err)
	}
	if !ok {
		c.record(journal.OpComplete, expected, "aborted", "swap cancelled or superseded before execution")
		color.New(color.FgYellow).Println("Aborted: the swap was cancelled or superseded; nothing recorded.")
		return
	}

	now := nowMillis()
	updated, err := core.CompleteUserSwap(ctx, c.Store, entry.SwapUUID, c.Config.User, now, now)
	if err != nil {
		exitError("%v", err)
	}

	c.record(journal.OpComplete, updated.SwapUUID, "completed", c.Config.User)

	color.New(color.FgGreen).Printf("Recorded completion for %s on swap %s\n", c.Config.User, updated.ShortUUID())
	fmt.Printf("%d user(s) completed so far\n", len(updated.SwappedUsers))
	fmt.Println("Commit and push the metadata document to publish the completion.")
}
