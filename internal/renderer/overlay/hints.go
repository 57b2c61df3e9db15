package overlay

import "github.com/dshills/strata/internal/renderer/core"

// Styles holds the default looks of the virtual text presets.
type Styles struct {
	// Ghost is the style for suggestion text shown after the cursor.
	Ghost core.Style

	// Hint is the style for inlay hints (types, parameter names).
	Hint core.Style

	// Header is the style for lines inserted above document lines.
	Header core.Style
}

// DefaultStyles returns the preset styles.
func DefaultStyles() Styles {
	return Styles{
		Ghost:  core.NewStyle(core.ColorFromRGB(128, 128, 128)).Italic(),
		Hint:   core.NewStyle(core.ColorFromRGB(100, 149, 237)).Italic(), // Cornflower blue
		Header: core.NewStyle(core.ColorFromRGB(150, 150, 150)).Bold(),
	}
}

// GhostText returns suggestion text drawn after the character at anchor.
func (s Styles) GhostText(anchor int, text string) VirtualText {
	return VirtualText{Anchor: anchor, Text: text, Style: s.Ghost, Position: AfterChar, Priority: PriorityLow}
}

// InlayHint returns a hint drawn before the character at anchor.
func (s Styles) InlayHint(anchor int, text string) VirtualText {
	return VirtualText{Anchor: anchor, Text: text, Style: s.Hint, Position: BeforeChar, Priority: PriorityNormal}
}

// HeaderLine returns a whole line inserted above the line holding anchor.
func (s Styles) HeaderLine(anchor int, text string) VirtualText {
	return VirtualText{Anchor: anchor, Text: text, Style: s.Header, Position: LineAbove, Priority: PriorityNormal}
}
