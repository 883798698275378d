// Command swapsync coordinates project repository swaps over a
// git-synchronized metadata document.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/edvartis/swapsync/internal/cli"
)

func main() {
	if os.Getenv("SWAPSYNC_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	log.SetReportTimestamp(false)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
