package core

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
	AttrHidden                  // Hidden/invisible text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Style is the visual style of a run of text. Unset colors inherit from
// whatever the style is patched over.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns a style with no color and no attributes.
func DefaultStyle() Style {
	return Style{}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the attributes added.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	return s.WithAttributes(AttrBold)
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	return s.WithAttributes(AttrItalic)
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	return s.WithAttributes(AttrUnderline)
}

// Dim returns a new style with the faint attribute added.
func (s Style) Dim() Style {
	return s.WithAttributes(AttrDim)
}

// Strikethrough returns a new style with strikethrough added.
func (s Style) Strikethrough() Style {
	return s.WithAttributes(AttrStrikethrough)
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	return s.WithAttributes(AttrReverse)
}

// Patch layers other over s: colors set in other replace those in s and
// attributes are combined.
func (s Style) Patch(other Style) Style {
	if other.Foreground.IsSet() {
		s.Foreground = other.Foreground
	}
	if other.Background.IsSet() {
		s.Background = other.Background
	}
	s.Attributes |= other.Attributes
	return s
}

// IsEmpty reports whether the style sets nothing.
func (s Style) IsEmpty() bool {
	return !s.Foreground.IsSet() && !s.Background.IsSet() && s.Attributes == AttrNone
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s == other
}
