package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/strata/internal/config"
	"github.com/dshills/strata/internal/config/watcher"
	"github.com/dshills/strata/internal/document"
	"github.com/dshills/strata/internal/logging"
	"github.com/dshills/strata/internal/renderer"
	"github.com/dshills/strata/internal/renderer/backend"
	"github.com/dshills/strata/internal/renderer/statusline"
)

type viewFlags struct {
	watch bool
	line  int
}

func newViewCmd(g *globalFlags) *cobra.Command {
	f := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Open a file in the interactive viewer",
		Long: `Open a file in a full-screen, read-only view.

Keys:
  arrows, h j k l   move the cursor
  PgUp PgDn, u d    scroll a page or half a page
  g G, Home End     go to the start or the end
  z                 center the cursor line
  w                 toggle soft wrap
  n r               toggle line numbers, relative numbers
  c                 toggle reveal codes
  q, Esc, Ctrl-C    quit

With --watch the file and the config file are reloaded when they change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, g, f, args[0])
		},
	}
	cmd.Flags().BoolVarP(&f.watch, "watch", "W", false, "reload the file when it changes on disk")
	cmd.Flags().IntVarP(&f.line, "line", "l", 1, "line to open at")
	return cmd
}

func runView(cmd *cobra.Command, g *globalFlags, f *viewFlags, path string) error {
	if f.watch && path == "-" {
		return errors.New("--watch needs a file, not stdin")
	}
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx, cmd, g)
	if err != nil {
		return err
	}
	// The terminal belongs to the viewer; log only to --log-file.
	closeLog, err := setupLogging(cfg, g, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	doc, err := openDocument(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Shutdown()

	v, surf := newDocViewer(term, cfg, g, doc, displayName(path))
	if f.line > 1 {
		surf.gotoLine(f.line - 1)
	}

	if f.watch {
		w, err := watcher.New()
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		r, err := newReloader(ctx, cfg, g, path, v, surf)
		if err != nil {
			return err
		}
		if err := w.Watch(r.docPath); err != nil {
			return err
		}
		if r.cfgPath != "" {
			if err := w.Watch(r.cfgPath); err != nil {
				logging.Get().WithComponent("view").Warn("not watching config: %v", err)
			}
		}
		w.OnChange(func(ev watcher.Event) { v.notify(ev.Path) })
		w.Start()
		v.onReload = r.reload
		v.status.SetWatching(true)
	}
	return v.run(ctx)
}

// newDocViewer builds the viewer for one document on an initialized
// backend.
func newDocViewer(b backend.Backend, cfg *config.Config, g *globalFlags, doc *document.Document, name string) (*viewer, *docSurface) {
	theme := renderer.LoadThemeOrDefault(cfg.Theme())
	surf := newDocSurface(newPane(cfg, g, doc, theme), name)
	status := statusline.New("VIEW")
	status.SetFilename(name)
	return newViewer(b, surf, status, theme), surf
}

func displayName(path string) string {
	if path == "-" {
		return "[stdin]"
	}
	return filepath.Base(path)
}

// reloader re-reads the viewed file or the config file after a change.
type reloader struct {
	ctx     context.Context
	cfg     *config.Config
	g       *globalFlags
	docPath string
	cfgPath string
	viewer  *viewer
	surf    *docSurface
}

func newReloader(ctx context.Context, cfg *config.Config, g *globalFlags, path string, v *viewer, surf *docSurface) (*reloader, error) {
	docPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	r := &reloader{ctx: ctx, cfg: cfg, g: g, docPath: docPath, viewer: v, surf: surf}
	if f := cfg.File(); f != "" {
		if r.cfgPath, err = filepath.Abs(f); err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
	}
	return r, nil
}

func (r *reloader) reload(path string) (string, error) {
	switch path {
	case r.docPath:
		doc, err := document.Open(r.docPath)
		if err != nil {
			return "", fmt.Errorf("reloading %s: %w", filepath.Base(path), err)
		}
		r.surf.replaceDocument(doc, highlighterFor(r.g, r.viewer.theme, doc))
		return fmt.Sprintf("%s reloaded", filepath.Base(path)), nil

	case r.cfgPath:
		if err := r.cfg.Reload(r.ctx); err != nil {
			return "", fmt.Errorf("reloading config: %w", err)
		}
		if level, ok := logging.ParseLevel(r.cfg.Logging().Level); ok {
			logging.Get().SetLevel(level)
		}
		theme := renderer.LoadThemeOrDefault(r.cfg.Theme())
		pane := r.surf.pane
		pane.SetOptions(renderer.OptionsFromConfig(r.cfg))
		pane.SetHighlighter(highlighterFor(r.g, theme, pane.Document()))
		r.viewer.setTheme(theme)
		return "config reloaded", nil
	}
	return "", nil
}
