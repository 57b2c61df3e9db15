package composite

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/text/unicode/norm"
)

// Align builds a two-pane alignment from an old and a new text using a
// line diff. Adjacent deleted and inserted runs pair up into Modification
// rows; the unpaired tail becomes Deletion or Addition rows. With headers
// set, every change run is preceded by a hunk header row.
func Align(oldText, newText string, headers bool) Alignment {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var rows []Row
	oldLine, newLine := 0, 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := countLines(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			for k := 0; k < n; k++ {
				rows = append(rows, Row{Type: Context, Lines: []LineRef{Ref(oldLine + k), Ref(newLine + k)}})
			}
			oldLine += n
			newLine += n
			continue
		}

		deleted, inserted := 0, 0
		if d.Type == diffmatchpatch.DiffDelete {
			deleted = n
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				inserted = countLines(diffs[i+1].Text)
				i++
			}
		} else {
			inserted = n
		}

		if headers {
			rows = append(rows, Row{
				Type:   HunkHeader,
				Lines:  []LineRef{None, None},
				Header: fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldLine+1, deleted, newLine+1, inserted),
			})
		}
		paired := min(deleted, inserted)
		for k := 0; k < paired; k++ {
			rows = append(rows, Row{Type: Modification, Lines: []LineRef{Ref(oldLine + k), Ref(newLine + k)}})
		}
		for k := paired; k < deleted; k++ {
			rows = append(rows, Row{Type: Deletion, Lines: []LineRef{Ref(oldLine + k), None}})
		}
		for k := paired; k < inserted; k++ {
			rows = append(rows, Row{Type: Addition, Lines: []LineRef{None, Ref(newLine + k)}})
		}
		oldLine += deleted
		newLine += inserted
	}
	return Alignment{Rows: rows}
}

// countLines counts the lines of a diff chunk; a chunk always ends at a
// line boundary except at the end of the text.
func countLines(s string) int {
	n := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// span is a half-open byte range relative to a line start.
type span struct {
	start int
	end   int
}

func (s span) contains(off int) bool {
	return off >= s.start && off < s.end
}

// InlineDiff returns the changed middle of two lines as byte ranges of
// each. The common prefix and suffix are measured in runes, the suffix
// only over what the prefix leaves. Lines equal after NFC normalization
// have no change.
func InlineDiff(oldLine, newLine string) (oldStart, oldEnd, newStart, newEnd int, changed bool) {
	if norm.NFC.String(oldLine) == norm.NFC.String(newLine) {
		return 0, 0, 0, 0, false
	}
	o, n := inlineSpans(oldLine, newLine)
	return o.start, o.end, n.start, n.end, true
}

func inlineSpans(oldLine, newLine string) (span, span) {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes := []rune(oldLine), []rune(newLine)

	prefix := dmp.DiffCommonPrefix(oldLine, newLine)
	oldRest, newRest := string(oldRunes[prefix:]), string(newRunes[prefix:])
	suffix := dmp.DiffCommonSuffix(oldRest, newRest)

	byteLen := func(r []rune) int { return len(string(r)) }
	o := span{start: byteLen(oldRunes[:prefix]), end: byteLen(oldRunes[:len(oldRunes)-suffix])}
	n := span{start: byteLen(newRunes[:prefix]), end: byteLen(newRunes[:len(newRunes)-suffix])}
	return o, n
}
