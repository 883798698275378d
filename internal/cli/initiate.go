package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/core"
	"github.com/edvartis/swapsync/internal/journal"
)

var (
	initiateReason  string
	initiateInbound bool
)

var initiateCmd = &cobra.Command{
	Use:   "initiate <other-project-url> <other-project-name>",
	Short: "Initiate a swap between this project and another repository",
	Long: `Record a new active swap entry and write the merged document back to the
metadata file. Other clients pick the entry up on their next sync.

By default this project is the source and the named repository the
destination (isOldProject=true). With --inbound the perspective flips: the
named repository is the source this project replaces, for seeding the
destination's own document; inherited history is re-tagged accordingly.

Examples:
  swapsync initiate https://git.example.com/team/proj-v2 proj-v2 --reason "host migration"
  swapsync initiate --inbound https://git.example.com/team/proj-v1 proj-v1`,
	Args: cobra.ExactArgs(2),
	Run:  runInitiate,
}

func init() {
	initiateCmd.Flags().StringVar(&initiateReason, "reason", "", "Why the migration is happening")
	initiateCmd.Flags().BoolVar(&initiateInbound, "inbound", false, "Record the swap from the destination repository's perspective")
}

func runInitiate(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	opts := core.InitiateOptions{
		InitiatedBy:    c.Config.User,
		Reason:         initiateReason,
		Timestamp:      nowMillis(),
		FromOldProject: !initiateInbound,
	}
	if initiateInbound {
		opts.OldProjectURL, opts.OldProjectName = args[0], args[1]
		opts.NewProjectURL, opts.NewProjectName = c.Config.ProjectURL, c.Config.ProjectName
	} else {
		opts.OldProjectURL, opts.OldProjectName = c.Config.ProjectURL, c.Config.ProjectName
		opts.NewProjectURL, opts.NewProjectName = args[0], args[1]
	}

	entry, err := core.InitiateSwap(context.Background(), c.Store, opts)
	if err != nil {
		exitError("%v", err)
	}

	c.record(journal.OpInitiate, entry.SwapUUID, string(entry.SwapStatus), initiateReason)

	green := color.New(color.FgGreen)
	green.Printf("Initiated swap %s\n", entry.ShortUUID())
	fmt.Printf("  %s → %s\n",
		describeProject(entry.OldProjectURL, entry.OldProjectName),
		describeProject(entry.NewProjectURL, entry.NewProjectName))
	fmt.Println("Commit and push the metadata document to publish the swap.")
}
