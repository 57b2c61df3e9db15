package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/strata/internal/renderer"
	"github.com/dshills/strata/internal/renderer/backend"
	"github.com/dshills/strata/internal/renderer/core"
)

// defaultDumpWidth is used when the output is not a terminal.
const defaultDumpWidth = 80

type dumpFlags struct {
	width  int
	height int
	line   int
	color  string
}

func newDumpCmd(g *globalFlags) *cobra.Command {
	f := &dumpFlags{}
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Render a file once and print it with ANSI colors",
		Long: `Render a file through the view pipeline and write the rows to standard
output. Without --height the whole document is printed; with it, one
screen starting at --line is printed, scrollbar included.

Use "-" to read standard input.

Examples:
  strata dump main.go
  strata dump --width 100 --color 256 main.go
  strata dump --height 20 --line 140 main.go | less -R`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, g, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&f.width, "width", "w", 0, "output width (default: terminal width, or 80)")
	fl.IntVar(&f.height, "height", 0, "rows to print (default: the whole document)")
	fl.IntVarP(&f.line, "line", "l", 1, "first line to show; needs --height")
	fl.StringVar(&f.color, "color", "auto", "color mode: auto, truecolor, 256, 16 or none")
	return cmd
}

func runDump(cmd *cobra.Command, g *globalFlags, f *dumpFlags, path string) error {
	if f.line > 1 && f.height <= 0 {
		return errors.New("--line needs --height")
	}
	cfg, err := loadConfig(cmd.Context(), cmd, g)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, g, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.OutOrStdout()
	profile, err := colorProfile(f.color, cfg.View().ColorMode, out)
	if err != nil {
		return err
	}

	doc, err := openDocument(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	pane := newPane(cfg, g, doc, renderer.LoadThemeOrDefault(cfg.Theme()))
	pane.SetFocused(false)

	width := f.width
	if width <= 0 {
		width = terminalWidth(out)
	}
	lines := dumpLines(pane, width, f.height, f.line)
	return backend.NewANSIWriter(out, profile).WriteLines(lines)
}

// dumpLines renders the rows dump prints. A height of zero prints every
// row of the document without a scrollbar.
func dumpLines(pane *renderer.Pane, width, height, line int) []core.Line {
	if height <= 0 {
		opts := pane.Options()
		opts.Scrollbar = false
		pane.SetOptions(opts)
		frame := pane.Render(core.NewRect(0, 0, width, max(pane.DocumentRows(width), 1)))
		// Rows past the content are "~" filler.
		return frame.Lines[:min(max(len(frame.Mappings), 1), len(frame.Lines))]
	}

	area := core.NewRect(0, 0, width, height)
	frame := pane.Render(area)
	if line > 1 {
		pane.ScrollBy(line - 1)
		frame = pane.Render(area)
	}
	return frame.Lines
}

// colorProfile resolves the --color flag. "auto" uses the configured
// mode on a terminal, limited by what the environment supports, and
// plain text anywhere else.
func colorProfile(flag, configured string, out io.Writer) (termenv.Profile, error) {
	if flag != "auto" {
		p, ok := backend.ParseProfile(flag)
		if !ok {
			return termenv.Ascii, fmt.Errorf("unknown color mode %q", flag)
		}
		return p, nil
	}
	if !isTerminal(out) {
		return termenv.Ascii, nil
	}
	p, ok := backend.ParseProfile(configured)
	if !ok {
		p = termenv.TrueColor
	}
	// Higher profiles have fewer colors.
	return max(p, termenv.NewOutput(out).EnvColorProfile()), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultDumpWidth
}
