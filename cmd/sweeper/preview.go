package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var loose bool

	cmd := &cobra.Command{
		Use:   "preview <file>...",
		Short: "Show column types, missing values and the first rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed int
			for _, p := range args {
				data, err := os.ReadFile(p)
				if err != nil {
					fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("✗ %s: %v", p, err)))
					failed++
					continue
				}
				file := core.NewUploadedFile(filepath.Base(p), data)
				t, _, err := core.Load(file, core.ParseOptions{LooseNumbers: loose})
				if err != nil {
					fmt.Fprintln(out, errorStyle.Render("✗ "+describe(err)))
					failed++
					continue
				}
				fmt.Fprint(out, renderPreview(core.BuildPreview(file, t)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&loose, "loose-numbers", false, `Treat "$1,234.50" and "(12.5)" as numbers`)
	return cmd
}
