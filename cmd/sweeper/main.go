// Command sweeper cleans and converts CSV and Excel files from the terminal.
//
// It runs the same pipeline as the web dashboard: every file is loaded into
// one session, actions are applied in a fixed order, and XP is awarded the
// same way.
package main

import (
	"io"
	"os"

	"github.com/JonMunkholm/sweeper/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "sweeper",
		Short: "Clean, chart and convert CSV and Excel files",
		Long: `sweeper loads CSV (.csv) and Excel (.xlsx) files, optionally removes
duplicate rows, fills missing numeric values with the column mean, keeps
selected columns, charts numeric columns, and writes the result as CSV or
Excel. Every action earns XP.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel, "text")
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newConvertCmd(), newPreviewCmd())
	return rootCmd
}
