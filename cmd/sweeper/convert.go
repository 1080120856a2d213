package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	to        string
	dedupe    bool
	fill      bool
	insight   bool
	columns   []string
	outDir    string
	chart     bool
	overwrite bool
	seed      int
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Clean files and write them in another format",
		Long: `convert processes each file independently: a file that fails to load
or convert is reported and the rest still run. Actions are applied in this
order: remove duplicates, fill missing values, insight, select columns, chart,
convert.`,
		Example: `  sweeper convert sales.xlsx --to csv --dedupe --fill
  sweeper convert a.csv b.csv --to excel --columns name,price --out converted --chart`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.to, "to", "", "Output format: csv or excel (required)")
	f.BoolVar(&opts.dedupe, "dedupe", false, "Remove duplicate rows")
	f.BoolVar(&opts.fill, "fill", false, "Fill missing numeric values with the column mean")
	f.BoolVar(&opts.insight, "insight", false, "Show an AI suggestion for each file")
	f.StringSliceVar(&opts.columns, "columns", nil, "Columns to keep, in order (comma-separated)")
	f.StringVarP(&opts.outDir, "out", "o", ".", "Output directory")
	f.BoolVar(&opts.chart, "chart", false, "Chart the first two numeric columns")
	f.BoolVar(&opts.overwrite, "overwrite", false, "Allow replacing an input file with its output")
	f.IntVar(&opts.seed, "seed", -1, "Pick messages deterministically (negative for random)")
	cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(cmd *cobra.Command, paths []string, opts *convertOptions) error {
	out := cmd.OutOrStdout()

	format, ok := core.FormatByKey(opts.to)
	if !ok {
		return fmt.Errorf("invalid --to %q (must be csv or excel)", opts.to)
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	svcOpts := core.Options{}
	if opts.seed >= 0 {
		svcOpts.Chooser = core.FixedChooser(opts.seed)
	}
	svc := core.NewService(svcOpts)
	sess := svc.NewSession()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		files   []core.UploadedFile
		sources []string // sources[i] is the path files[i] was read from
		failed  int
	)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("✗ %s: %v", p, err)))
			failed++
			continue
		}
		files = append(files, core.NewUploadedFile(filepath.Base(p), data))
		sources = append(sources, p)
	}

	plan := outputPlan{inputs: sources, overwrite: opts.overwrite, claimed: make(map[string]string)}
	for i, o := range svc.Upload(ctx, sess, files) {
		fmt.Fprintln(out, titleStyle.Render(sources[i]))
		if o.Err != nil {
			fmt.Fprintln(out, errorStyle.Render("✗ "+describe(o.Err)))
			failed++
			continue
		}
		target := filepath.Join(opts.outDir, core.OutputName(o.FileName, format))
		err := plan.claim(sources[i], target)
		if err == nil {
			err = processFile(ctx, cmd, svc, sess, o, target, format, opts)
		}
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("✗ "+describe(err)))
			failed++
		}
	}

	view := svc.View(sess, false)
	fmt.Fprintln(out)
	if failed < len(paths) {
		fmt.Fprintln(out, successStyle.Render("All files processed! Keep growing your skills! 🚀"))
	}
	fmt.Fprintln(out, renderProgress(view.XP, view.Progress))

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

// outputPlan tracks which output paths a run writes so no file replaces an
// input or another file's output.
type outputPlan struct {
	inputs    []string
	overwrite bool
	claimed   map[string]string // absolute target -> source
}

func (p *outputPlan) claim(source, target string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if prev, ok := p.claimed[abs]; ok {
		return fmt.Errorf("%s and %s both convert to %s; convert them into separate --out directories", prev, source, target)
	}
	if !p.overwrite {
		for _, in := range p.inputs {
			if samePath(in, target) {
				return fmt.Errorf("refusing to overwrite input %s; pass --out or --overwrite", in)
			}
		}
	}
	p.claimed[abs] = source
	return nil
}

// processFile applies the requested actions to one loaded file and writes
// the converted output to target. The write happens before the conversion's
// points are committed, so a failed write earns nothing.
func processFile(ctx context.Context, cmd *cobra.Command, svc *core.Service, sess *core.Session, o core.UploadOutcome, target string, format core.Format, opts *convertOptions) error {
	out := cmd.OutOrStdout()

	writeOutput := func(ev core.Event) error {
		if err := os.WriteFile(target, ev.Export.Data, 0o644); err != nil {
			return &core.ExportError{FileName: o.FileName, Format: format.Label, Err: err}
		}
		return nil
	}

	type step struct {
		enabled bool
		action  core.Action
		params  core.Params
	}
	steps := []step{
		{opts.dedupe, core.ActionRemoveDuplicates, core.Params{}},
		{opts.fill, core.ActionFillMissing, core.Params{}},
		{opts.insight, core.ActionInsight, core.Params{}},
		{len(opts.columns) > 0, core.ActionSelectColumns, core.Params{Columns: trimAll(opts.columns)}},
		{opts.chart, core.ActionVisualize, core.Params{}},
		{true, core.ActionConvert, core.Params{Format: format, Deliver: writeOutput}},
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		res, err := svc.Do(ctx, sess, o.FileID, s.action, s.params)
		if err != nil {
			return err
		}
		if res.Chart != nil {
			fmt.Fprint(out, renderChart(*res.Chart))
		}
		for _, m := range res.Messages {
			fmt.Fprintln(out, successStyle.Render(m))
		}
		if res.Export != nil {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ wrote %s (%s)", target, format.Label)))
		}
		if res.EarnMessage != "" {
			fmt.Fprintln(out, infoStyle.Render(res.EarnMessage))
		}
	}
	return nil
}

// describe renders err for the terminal. Errors outside the message catalog
// are shown as-is.
func describe(err error) string {
	if core.IsUserFacing(err) {
		return core.FormatUserError(err)
	}
	return err.Error()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
