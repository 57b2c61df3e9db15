package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/strata/internal/config"
	"github.com/dshills/strata/internal/renderer"
	"github.com/dshills/strata/internal/renderer/backend"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/statusline"
)

type diffFlags struct {
	print     bool
	noHeaders bool
	width     int
	color     string
}

func newDiffCmd(g *globalFlags) *cobra.Command {
	f := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Show two files side by side with their lines aligned",
		Long: `Show two files side by side. Matching lines are aligned, changed lines
are tinted and the changed part of a modified line is highlighted.

When standard output is not a terminal, or with --print, the whole diff is
printed once. Otherwise it opens interactively:

  arrows, h j k l   move the cursor
  PgUp PgDn         scroll a page
  n                 jump to the next change
  Tab               switch the focused side
  < >               scroll the focused side horizontally
  q, Esc, Ctrl-C    quit`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, g, f, args[0], args[1])
		},
	}
	fl := cmd.Flags()
	fl.BoolVarP(&f.print, "print", "p", false, "print the diff instead of opening it")
	fl.BoolVar(&f.noHeaders, "no-headers", false, "do not insert a header row before each change")
	fl.IntVarP(&f.width, "width", "w", 0, "output width when printing (default: terminal width, or 80)")
	fl.StringVar(&f.color, "color", "auto", "color mode when printing: auto, truecolor, 256, 16 or none")
	return cmd
}

func runDiff(cmd *cobra.Command, g *globalFlags, f *diffFlags, oldPath, newPath string) error {
	if oldPath == "-" && newPath == "-" {
		return errors.New("only one side can be read from stdin")
	}
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx, cmd, g)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	interactive := !f.print && isTerminal(out)

	logOut := cmd.ErrOrStderr()
	if interactive {
		logOut = io.Discard
	}
	closeLog, err := setupLogging(cfg, g, logOut)
	if err != nil {
		return err
	}
	defer closeLog()

	before, err := openDocument(oldPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	after, err := openDocument(newPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	theme := renderer.LoadThemeOrDefault(cfg.Theme())
	d := newDiffPane(cfg, g, !f.noHeaders, interactive, theme,
		renderer.DiffSide{Label: displayName(oldPath), Doc: before},
		renderer.DiffSide{Label: displayName(newPath), Doc: after},
	)

	if !interactive {
		profile, err := colorProfile(f.color, cfg.View().ColorMode, out)
		if err != nil {
			return err
		}
		width := f.width
		if width <= 0 {
			width = terminalWidth(out)
		}
		return backend.NewANSIWriter(out, profile).WriteLines(diffLines(d, width))
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Shutdown()

	status := statusline.New("DIFF")
	surf := newDiffSurface(d, displayName(oldPath), displayName(newPath))
	return newViewer(term, surf, status, theme).run(ctx)
}

// newDiffPane builds a diff pane from the configuration. Printed diffs
// show every row, so they get no scrollbar.
func newDiffPane(cfg *config.Config, g *globalFlags, headers, interactive bool, theme *highlight.Theme, before, after renderer.DiffSide) *renderer.DiffPane {
	opts := renderer.DefaultDiffOptions()
	opts.TabSize = cfg.Editor().TabSize
	opts.Headers = cfg.View().DiffHeaders && headers
	opts.Scrollbar = cfg.View().Scrollbar && interactive
	for _, side := range []*renderer.DiffSide{&before, &after} {
		side.Highlighter = highlighterFor(g, theme, side.Doc)
	}
	d := renderer.NewDiffPane(before, after, opts)
	d.SetTheme(theme)
	return d
}

// diffLines renders every aligned row below the label row.
func diffLines(d *renderer.DiffPane, width int) []core.Line {
	return d.Render(core.NewRect(0, 0, width, d.Rows()+1)).Lines
}
