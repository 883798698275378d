package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edvartis/swapsync/internal/config"
)

var (
	initProjectURL  string
	initProjectName string
	initUser        string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize swapsync in the current project",
	Long: `Create a .swapsync directory in the current directory with the project's
identity and the current user. The metadata document is expected at
metadata.json in the project root unless reconfigured.`,
	Run: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initProjectURL, "url", "", "URL of this project's hosted repository")
	initCmd.Flags().StringVar(&initProjectName, "name", "", "Name of this project")
	initCmd.Flags().StringVar(&initUser, "user", "", "User identity for completion records")
	initCmd.MarkFlagRequired("name")
	initCmd.MarkFlagRequired("user")
}

func runInit(cmd *cobra.Command, args []string) {
	cfg, err := config.Initialize(initProjectURL, initProjectName, initUser)
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Initialized swapsync project in %s\n", cfg.Path())
	fmt.Printf("  project: %s", cfg.ProjectName)
	if cfg.ProjectURL != "" {
		fmt.Printf(" (%s)", cfg.ProjectURL)
	}
	fmt.Println()
	fmt.Printf("  user:    %s\n", cfg.User)
}
