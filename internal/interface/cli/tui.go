package cli

import (
	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse sessions interactively",
	Long: `Launch the interactive terminal browser.

Running pufflog with no subcommand does the same thing.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return tui.Run(store)
}
