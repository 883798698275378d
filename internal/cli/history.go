package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/swap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List repositories deprecated by the swap chain",
	Long: `Walk the full inherited swap history and list every repository superseded
by the current one, oldest first. UIs use this to hide deprecated project
listings; matching may fall back to name for repositories with no locally
known URL.`,
	Run: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	info, exists, err := c.Store.Read(context.Background())
	if err != nil {
		exitError("%v", err)
	}
	if !exists {
		color.New(color.FgYellow).Println("No metadata document found.")
		return
	}

	deprecated := swap.DeprecatedProjectsFromHistory(info)
	if len(deprecated) == 0 {
		fmt.Println("No deprecated repositories.")
		return
	}

	fmt.Printf("%d deprecated repositor(ies), oldest first:\n", len(deprecated))
	for _, p := range deprecated {
		fmt.Printf("  %s\n", describeProject(p.URL, p.Name))
	}
}
