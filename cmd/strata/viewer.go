package main

import (
	"context"
	"time"

	"github.com/dshills/strata/internal/logging"
	"github.com/dshills/strata/internal/renderer/backend"
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/statusline"
)

const (
	targetFPS = 60
	frameTime = time.Second / targetFPS

	// wheelLines is how far one mouse wheel step scrolls.
	wheelLines = 3
)

// surface is what the viewer shows above the status line.
type surface interface {
	handleKey(ev backend.Event)
	handleMouse(ev backend.Event)
	draw(screen *backend.Screen, area core.Rect)
	updateStatus(s *statusline.StatusLine)
	setTheme(theme *highlight.Theme)
}

// reloadFunc is called with the absolute path of a changed file. It
// returns the message to show.
type reloadFunc func(path string) (string, error)

// viewer runs the interactive loop of strata view and strata diff.
type viewer struct {
	backend backend.Backend
	screen  *backend.Screen
	surface surface
	status  *statusline.StatusLine
	theme   *highlight.Theme

	onReload reloadFunc
	reloads  chan string

	dirty bool
	log   *logging.Logger
}

// newViewer wraps an initialized backend.
func newViewer(b backend.Backend, s surface, status *statusline.StatusLine, theme *highlight.Theme) *viewer {
	return &viewer{
		backend: b,
		screen:  backend.NewScreen(b),
		surface: s,
		status:  status,
		theme:   theme,
		reloads: make(chan string, 8),
		dirty:   true,
		log:     logging.Get().WithComponent("view"),
	}
}

// notify queues a reload of path. It is safe to call from any goroutine
// and drops the request when the queue is full.
func (v *viewer) notify(path string) {
	select {
	case v.reloads <- path:
	default:
		v.log.Debug("reload queue full, dropping %s", path)
	}
}

func (v *viewer) setTheme(theme *highlight.Theme) {
	v.theme = theme
	v.surface.setTheme(theme)
	v.dirty = true
}

// run draws and handles events until the user quits or ctx ends.
func (v *viewer) run(ctx context.Context) error {
	events := make(chan backend.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.backend.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	frameTicker := time.NewTicker(frameTime)
	defer frameTicker.Stop()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if v.handleEvent(ev) {
				return nil
			}
		case path := <-v.reloads:
			v.handleReload(path)
		case <-frameTicker.C:
			if v.dirty {
				v.draw()
			}
		}
	}
}

// handleEvent applies one event and reports whether the viewer should
// quit.
func (v *viewer) handleEvent(ev backend.Event) bool {
	switch ev.Type {
	case backend.EventResize:
		v.screen.Resize(ev.Width, ev.Height)
	case backend.EventKey:
		if isQuit(ev) {
			return true
		}
		v.status.ClearMessage()
		v.surface.handleKey(ev)
	case backend.EventMouse:
		v.surface.handleMouse(ev)
	default:
		return false
	}
	v.dirty = true
	return false
}

func isQuit(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyEscape:
		return true
	case backend.KeyRune:
		return ev.Rune == 'q'
	}
	return false
}

func (v *viewer) handleReload(path string) {
	if v.onReload == nil {
		return
	}
	msg, err := v.onReload(path)
	switch {
	case err != nil:
		v.log.Warn("reload of %s failed: %v", path, err)
		v.status.SetMessage(err.Error(), statusline.MessageError)
	case msg != "":
		v.status.SetMessage(msg, statusline.MessageInfo)
	}
	v.dirty = true
}

// contentArea is the screen minus the status row.
func (v *viewer) contentArea() core.Rect {
	w, h := v.screen.Buffer().Size()
	if h > 1 {
		h--
	}
	return core.NewRect(0, 0, w, h)
}

func (v *viewer) draw() {
	w, h := v.screen.Buffer().Size()
	area := v.contentArea()
	v.surface.draw(v.screen, area)
	if h > area.Height {
		v.surface.updateStatus(v.status)
		v.screen.Buffer().DrawLine(0, h-1, w, v.status.Render(w, v.theme))
	}
	v.screen.Flush()
	v.dirty = false
}
