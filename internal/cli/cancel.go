package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/core"
	"github.com/edvartis/swapsync/internal/journal"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <swap-id>",
	Short: "Cancel an in-flight swap",
	Long: `Mark a swap entry cancelled. Cancellation is sticky: once any client's
copy records it, no later completion — however recent — reactivates the
entry. Clients that already completed their step keep their completion
records; clients that have not yet acted are released from the migration.`,
	Args: cobra.ExactArgs(1),
	Run:  runCancel,
}

func runCancel(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	uuid := resolveSwapUUID(c, args[0])

	entry, err := core.CancelSwap(context.Background(), c.Store, uuid, c.Config.User, nowMillis())
	if err != nil {
		exitError("%v", err)
	}

	c.record(journal.OpCancel, entry.SwapUUID, string(entry.SwapStatus), "")

	color.New(color.FgYellow).Printf("Cancelled swap %s\n", entry.ShortUUID())
	fmt.Println("Commit and push the metadata document to publish the cancellation.")
}

// resolveSwapUUID expands a short swap id prefix against the current
// document. Exits on ambiguity.
func resolveSwapUUID(c *cmdContext, prefix string) string {
	info, _, err := c.Store.Read(context.Background())
	if err != nil {
		exitError("%v", err)
	}

	var match string
	for _, e := range info.SwapEntries {
		if e.SwapUUID == prefix {
			return e.SwapUUID
		}
		if len(prefix) >= 4 && len(e.SwapUUID) > len(prefix) && e.SwapUUID[:len(prefix)] == prefix {
			if match != "" {
				exitError("swap id %s is ambiguous", prefix)
			}
			match = e.SwapUUID
		}
	}
	if match == "" {
		return prefix
	}
	return match
}
