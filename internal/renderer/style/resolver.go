// Package style resolves the final style of one character by layering
// injected token styles, terminal escapes, syntax and semantic highlights,
// overlays, selection and cursor rendering in a fixed order.
package style

import (
	"github.com/dshills/strata/internal/renderer/core"
	"github.com/dshills/strata/internal/renderer/highlight"
	"github.com/dshills/strata/internal/renderer/overlay"
)

// Layer identifies one step of style resolution. Layers are applied in
// declaration order; a later layer overrides only the channels it sets.
type Layer uint8

const (
	// LayerToken is the style carried by injected content.
	LayerToken Layer = iota

	// LayerANSI is the style selected by escape sequences in the text.
	LayerANSI

	// LayerSyntax is the syntax highlight color.
	LayerSyntax

	// LayerSemantic is the semantic highlight color.
	LayerSemantic

	// LayerOverlay is the overlay faces covering the character.
	LayerOverlay

	// LayerSelection is the selection highlight.
	LayerSelection

	// LayerCursor is cursor rendering (highest priority).
	LayerCursor

	// LayerCount is the number of layers.
	LayerCount
)

// String returns the string representation of the layer.
func (l Layer) String() string {
	switch l {
	case LayerToken:
		return "token"
	case LayerANSI:
		return "ansi"
	case LayerSyntax:
		return "syntax"
	case LayerSemantic:
		return "semantic"
	case LayerOverlay:
		return "overlay"
	case LayerSelection:
		return "selection"
	case LayerCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// CharContext is everything that decides the look of one character.
type CharContext struct {
	// Pos is the document byte behind the character; HasPos is false for
	// characters that come from virtual text or wrapping.
	Pos    int
	HasPos bool

	// TokenStyle is set for injected content that carries its own style.
	TokenStyle *core.Style

	// ANSI is the style selected by escape sequences before the character.
	ANSI core.Style

	Highlights highlight.Spans
	Semantic   highlight.Spans

	// Overlays are the viewport's overlays in query order.
	Overlays []overlay.Overlay

	Theme *highlight.Theme

	// Selected is true when the character is inside a selection and is
	// not an excluded cursor position.
	Selected bool

	Cursor  bool
	Primary int
	Active  bool
}

// Output is the resolved style of a character.
type Output struct {
	Style           core.Style
	SecondaryCursor bool
}

// Resolver resolves character styles. Layers can be switched off, for
// example to show a buffer without syntax colors.
type Resolver struct {
	layerEnabled [LayerCount]bool
}

// NewResolver creates a resolver with every layer enabled.
func NewResolver() *Resolver {
	r := &Resolver{}
	for i := range r.layerEnabled {
		r.layerEnabled[i] = true
	}
	return r
}

// SetLayerEnabled enables or disables a layer.
func (r *Resolver) SetLayerEnabled(layer Layer, enabled bool) {
	if layer < LayerCount {
		r.layerEnabled[layer] = enabled
	}
}

// IsLayerEnabled returns true if a layer is enabled.
func (r *Resolver) IsLayerEnabled(layer Layer) bool {
	if layer >= LayerCount {
		return false
	}
	return r.layerEnabled[layer]
}

var defaultResolver = NewResolver()

// Resolve computes the style of a character with every layer enabled.
func Resolve(ctx CharContext) Output {
	return defaultResolver.Resolve(ctx)
}

// Resolve computes the style of a character.
func (r *Resolver) Resolve(ctx CharContext) Output {
	theme := ctx.Theme
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	fg := theme.UI.EditorFg

	tokenStyle := ctx.TokenStyle
	if !r.layerEnabled[LayerToken] {
		tokenStyle = nil
	}
	var ansi core.Style
	if r.layerEnabled[LayerANSI] {
		ansi = ctx.ANSI
	}
	var hl core.Color
	hasHL := false
	if r.layerEnabled[LayerSyntax] && ctx.HasPos {
		hl, hasHL = ctx.Highlights.ColorAt(ctx.Pos)
	}

	var st core.Style
	switch {
	case tokenStyle != nil:
		st = core.Style{
			Foreground: tokenStyle.Foreground.Or(fg),
			Background: tokenStyle.Background,
			Attributes: tokenStyle.Attributes,
		}
	case !ansi.IsEmpty():
		st = core.Style{
			Foreground: ansi.Foreground.Or(fg),
			Background: ansi.Background,
			Attributes: ansi.Attributes,
		}
	case hasHL:
		st = core.NewStyle(hl)
	default:
		st = core.NewStyle(fg)
	}

	// Escapes that only set background or attributes keep the syntax color.
	if hasHL && !ansi.Foreground.IsSet() && (ansi.Background.IsSet() || ansi.Attributes != core.AttrNone) {
		st.Foreground = hl
	}

	if r.layerEnabled[LayerSemantic] && tokenStyle == nil && ctx.HasPos {
		if c, ok := ctx.Semantic.ColorAt(ctx.Pos); ok {
			st.Foreground = c
		}
	}

	if r.layerEnabled[LayerOverlay] && ctx.HasPos {
		for _, o := range ctx.Overlays {
			if o.Contains(ctx.Pos) {
				st = ApplyFace(st, o.Face, theme)
			}
		}
	}

	if r.layerEnabled[LayerSelection] && ctx.Selected {
		st = core.Style{Foreground: fg, Background: theme.UI.SelectionBg}
	}

	out := Output{
		SecondaryCursor: ctx.Cursor && (!ctx.HasPos || ctx.Pos != ctx.Primary),
	}
	if r.layerEnabled[LayerCursor] && ctx.Cursor {
		if ctx.Active {
			st = st.Reverse()
		} else {
			st.Foreground = fg
			st.Background = theme.UI.InactiveCursor
		}
	}
	out.Style = st
	return out
}

// ApplyFace patches an overlay face over st.
func ApplyFace(st core.Style, face overlay.Face, theme *highlight.Theme) core.Style {
	switch face.Kind {
	case overlay.FaceUnderline:
		st = st.Underline()
		st.Foreground = face.Color
	case overlay.FaceBackground:
		st.Background = face.Color
	case overlay.FaceForeground:
		st.Foreground = face.Color
	case overlay.FaceStyle:
		st = st.Patch(face.Style)
	case overlay.FaceThemed:
		st = st.Patch(ThemedStyle(face, theme))
	}
	return st
}

// ThemedStyle resolves the theme keys of a themed face over its fallback
// style.
func ThemedStyle(face overlay.Face, theme *highlight.Theme) core.Style {
	s := face.Style
	if theme == nil {
		return s
	}
	if face.FgKey != "" {
		if c, ok := theme.ResolveKey(face.FgKey); ok {
			s.Foreground = c
		}
	}
	if face.BgKey != "" {
		if c, ok := theme.ResolveKey(face.BgKey); ok {
			s.Background = c
		}
	}
	return s
}

// FaceBackground returns the background a face paints, used to extend an
// overlay past the end of its line.
func FaceBackground(face overlay.Face, theme *highlight.Theme) (core.Color, bool) {
	switch face.Kind {
	case overlay.FaceBackground:
		return face.Color, true
	case overlay.FaceStyle:
		return face.Style.Background, face.Style.Background.IsSet()
	case overlay.FaceThemed:
		bg := ThemedStyle(face, theme).Background
		return bg, bg.IsSet()
	}
	return core.Color{}, false
}
