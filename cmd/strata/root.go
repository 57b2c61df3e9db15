package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/strata/internal/config"
	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/logging"
	"github.com/dshills/strata/internal/renderer"
	"github.com/dshills/strata/internal/renderer/highlight"
)

// globalFlags are the persistent flags every command shares. Flags that
// name a setting override the config file and the environment.
type globalFlags struct {
	configPath   string
	logLevel     string
	logFile      string
	theme        string
	tabSize      int
	wrap         bool
	lineNumbers  string
	composeWidth int
	noHighlight  bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "strata",
		Short: "A terminal text view renderer",
		Long: `strata lays out and renders text the way an editor pane does: tabs,
wide characters, soft wrap, a line-number gutter, syntax colors and a
scrollbar.

Settings are read from the config file, then STRATA_* environment
variables, then the flags below.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "",
		"config file (default: "+config.DefaultFile()+")")
	pf.StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&g.logFile, "log-file", "", "append log output to this file")
	pf.StringVarP(&g.theme, "theme", "t", "", "theme name (default, monokai, light or a chroma style)")
	pf.IntVar(&g.tabSize, "tab-size", config.DefaultTabSize, "tab stop width")
	pf.BoolVar(&g.wrap, "wrap", true, "soft-wrap long lines")
	pf.StringVar(&g.lineNumbers, "line-numbers", "on", "line numbers: on, off or relative")
	pf.IntVar(&g.composeWidth, "compose-width", 0, "center a text column of this width (0 uses the full width)")
	pf.BoolVar(&g.noHighlight, "no-highlight", false, "disable syntax highlighting")

	root.AddCommand(newViewCmd(g), newDumpCmd(g), newDiffCmd(g))
	return root
}

// loadConfig reads the configuration sources and applies the flags the
// user set on top of them.
func loadConfig(ctx context.Context, cmd *cobra.Command, g *globalFlags) (*config.Config, error) {
	var opts []config.Option
	if g.configPath != "" {
		opts = append(opts, config.WithRequiredFile(g.configPath))
	} else if f := config.DefaultFile(); f != "" {
		opts = append(opts, config.WithFile(f))
	}
	cfg := config.New(opts...)
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	set := func(flag, path string, v any) error {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		if err := cfg.Set(path, v); err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
		return nil
	}
	err := errors.Join(
		set("log-level", "logging.level", g.logLevel),
		set("theme", "theme.name", g.theme),
		set("tab-size", "editor.tabSize", int64(g.tabSize)),
		set("wrap", "editor.lineWrap", g.wrap),
		set("line-numbers", "editor.lineNumbers", g.lineNumbers),
		set("compose-width", "view.composeWidth", int64(g.composeWidth)),
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs the process logger. Output goes to the log file
// when one is named, else to fallback.
func setupLogging(cfg *config.Config, g *globalFlags, fallback io.Writer) (func(), error) {
	level, _ := logging.ParseLevel(cfg.Logging().Level)
	out := fallback
	closeFn := func() {}
	if g.logFile != "" {
		f, err := os.OpenFile(g.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logging.Set(logging.New(logging.Config{Level: level, Output: out, Prefix: "strata"}))
	return closeFn, nil
}

// openDocument reads path, or standard input when path is "-".
func openDocument(path string, stdin io.Reader) (*document.Document, error) {
	if path == "-" {
		doc, err := document.FromReader(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return doc, nil
	}
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return doc, nil
}

// highlighterFor picks a syntax highlighter for doc, or nil for binary
// documents and when highlighting is off.
func highlighterFor(g *globalFlags, theme *highlight.Theme, doc *document.Document) highlight.Provider {
	if g.noHighlight || doc.IsBinary() {
		return nil
	}
	p := highlight.NewChromaProvider(theme, doc.Path(), doc.Bytes())
	logging.Get().WithComponent("highlight").Debug("using lexer %s for %q", p.Language(), doc.Path())
	return p
}

// newPane builds a pane for doc from the configuration.
func newPane(cfg *config.Config, g *globalFlags, doc *document.Document, theme *highlight.Theme) *renderer.Pane {
	pane := renderer.NewPane(doc, renderer.OptionsFromConfig(cfg))
	pane.SetTheme(theme)
	if h := highlighterFor(g, theme, doc); h != nil {
		pane.SetHighlighter(h)
	}
	return pane
}
