package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/models"
	"github.com/edvartis/swapsync/internal/swap"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current swap state of this project",
	Long:  `Show the active migration (if any), per-user completion, and the cache state.`,
	Run:   runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	info, exists, err := c.Store.Read(context.Background())
	if err != nil {
		exitError("%v", err)
	}

	fmt.Printf("Project: %s\n", describeProject(c.Config.ProjectURL, c.Config.ProjectName))

	if !exists {
		color.New(color.FgYellow).Println("No metadata document found; swap state unknown.")
		return
	}

	if len(info.SwapEntries) == 0 {
		fmt.Println("No swap history.")
		return
	}

	active := swap.ActiveSwapEntry(info)
	if active == nil {
		fmt.Println("No active swap.")
	} else {
		printActiveEntry(active)
	}

	cancelledCount := 0
	for _, e := range info.SwapEntries {
		if e.SwapStatus == models.SwapCancelled {
			cancelledCount++
		}
	}
	fmt.Printf("\n%d entr(ies) in history, %d cancelled\n", len(info.SwapEntries), cancelledCount)

	if cached, found, err := c.Cache.Load(); err == nil && found {
		fmt.Printf("Local cache: fetched %s", time.UnixMilli(cached.FetchedAt).Format(time.RFC3339))
		if cached.HasPendingDownloads() {
			fmt.Print(", pending downloads")
		}
		fmt.Println()
	}
}

func printActiveEntry(e *models.SwapEntry) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	cyan.Printf("Active swap %s\n", e.ShortUUID())
	fmt.Printf("  %s → %s\n", describeProject(e.OldProjectURL, e.OldProjectName), describeProject(e.NewProjectURL, e.NewProjectName))
	if e.IsOldProject {
		fmt.Println("  this repository is the source: migration required")
	} else {
		fmt.Println("  this repository is the destination")
	}
	fmt.Printf("  initiated by %s at %s\n", e.SwapInitiatedBy, time.UnixMilli(e.SwapInitiatedAt).Format(time.RFC3339))
	if e.SwapReason != "" {
		fmt.Printf("  reason: %s\n", e.SwapReason)
	}

	if len(e.SwappedUsers) > 0 {
		fmt.Println("  completed by:")
		for _, u := range e.SwappedUsers {
			if u.Executed {
				green.Printf("    %s", u.UserToSwap)
				if u.SwapCompletedAt != 0 {
					fmt.Printf(" (%s)", time.UnixMilli(u.SwapCompletedAt).Format(time.RFC3339))
				}
				fmt.Println()
			} else {
				fmt.Printf("    %s (pending)\n", u.UserToSwap)
			}
		}
	}
}
