package overlay

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/strata/internal/renderer/core"
)

// VirtualPosition says where virtual text is drawn relative to its anchor.
type VirtualPosition uint8

const (
	// BeforeChar draws the text just before the anchor character.
	BeforeChar VirtualPosition = iota
	// AfterChar draws the text just after the anchor character.
	AfterChar
	// LineAbove inserts a whole display line above the anchor's line.
	LineAbove
	// LineBelow inserts a whole display line below the anchor's line.
	LineBelow
)

// String returns the position name.
func (p VirtualPosition) String() string {
	switch p {
	case BeforeChar:
		return "before"
	case AfterChar:
		return "after"
	case LineAbove:
		return "above"
	case LineBelow:
		return "below"
	default:
		return "unknown"
	}
}

// IsLine reports whether the position inserts a whole line.
func (p VirtualPosition) IsLine() bool {
	return p == LineAbove || p == LineBelow
}

// VirtualText is text drawn in the view that does not exist in the
// document, such as inlay hints or a header above a line.
type VirtualText struct {
	ID       string
	Anchor   int
	Text     string
	Style    core.Style
	Position VirtualPosition
	Priority Priority
}

// VirtualTexts stores the virtual text of one document. It is safe for
// concurrent use.
type VirtualTexts struct {
	mu    sync.RWMutex
	items map[string]VirtualText
	seq   map[string]uint64
	next  uint64
}

// NewVirtualTexts creates an empty store.
func NewVirtualTexts() *VirtualTexts {
	return &VirtualTexts{
		items: make(map[string]VirtualText),
		seq:   make(map[string]uint64),
	}
}

// Add stores vt and returns its ID, generating one if vt.ID is empty.
func (v *VirtualTexts) Add(vt VirtualText) string {
	if vt.ID == "" {
		vt.ID = uuid.NewString()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.items[vt.ID]; !ok {
		v.next++
		v.seq[vt.ID] = v.next
	}
	v.items[vt.ID] = vt
	return vt.ID
}

// Remove deletes a virtual text by ID.
func (v *VirtualTexts) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.items[id]; !ok {
		return false
	}
	delete(v.items, id)
	delete(v.seq, id)
	return true
}

// Clear removes everything.
func (v *VirtualTexts) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = make(map[string]VirtualText)
	v.seq = make(map[string]uint64)
}

// Len returns the number of stored virtual texts.
func (v *VirtualTexts) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

// query returns the items matching keep, ordered by anchor, then priority,
// then insertion.
func (v *VirtualTexts) query(keep func(VirtualText) bool) []VirtualText {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []VirtualText
	for _, vt := range v.items {
		if keep(vt) {
			out = append(out, vt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Anchor != b.Anchor {
			return a.Anchor < b.Anchor
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return v.seq[a.ID] < v.seq[b.ID]
	})
	return out
}

// LinesInRange returns the LineAbove and LineBelow texts anchored in
// [start, end).
func (v *VirtualTexts) LinesInRange(start, end int) []VirtualText {
	return v.query(func(vt VirtualText) bool {
		return vt.Position.IsLine() && vt.Anchor >= start && vt.Anchor < end
	})
}

// InlineInRange returns the BeforeChar and AfterChar texts anchored in
// [start, end).
func (v *VirtualTexts) InlineInRange(start, end int) []VirtualText {
	return v.query(func(vt VirtualText) bool {
		return !vt.Position.IsLine() && vt.Anchor >= start && vt.Anchor < end
	})
}

// Inline indexes inline virtual text by anchor byte for per-character
// lookups during rendering.
type Inline map[int][]VirtualText

// IndexInline groups a query result by anchor.
func IndexInline(texts []VirtualText) Inline {
	if len(texts) == 0 {
		return nil
	}
	idx := make(Inline)
	for _, vt := range texts {
		idx[vt.Anchor] = append(idx[vt.Anchor], vt)
	}
	return idx
}

// At returns the texts anchored at pos with the given position.
func (in Inline) At(pos int, p VirtualPosition) []VirtualText {
	var out []VirtualText
	for _, vt := range in[pos] {
		if vt.Position == p {
			out = append(out, vt)
		}
	}
	return out
}
