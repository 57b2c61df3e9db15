package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrNotIndexed       = errors.New("offset not indexed")
)

// Document is an immutable byte buffer with a lazily built line index.
type Document struct {
	data       []byte
	lineEnding LineEnding
	binary     bool
	path       string

	// lineStarts[i] is the byte offset where line i begins. The slice
	// covers every line starting at or before indexedTo.
	lineStarts []int
	indexedTo  int
}

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithLineEnding forces the document's line ending instead of detecting it.
func WithLineEnding(le LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
	}
}

// WithCRLF configures the document to use Windows line endings.
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithBinary forces binary (or text) handling regardless of content.
func WithBinary(binary bool) Option {
	return func(d *Document) {
		d.binary = binary
	}
}

// WithPath records the file the document was read from.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// New creates a document over data. The line ending and binary flag are
// detected from the content unless options override them.
func New(data []byte, opts ...Option) *Document {
	d := &Document{
		data:       data,
		lineEnding: DetectLineEnding(data),
		binary:     IsBinary(data),
		lineStarts: []int{0},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromString creates a document from a string.
func FromString(s string, opts ...Option) *Document {
	return New([]byte(s), opts...)
}

// FromReader reads all of r into a new document.
func FromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return New(data, opts...), nil
}

// Open reads the named file into a new document.
func Open(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}
	opts = append([]Option{WithPath(path)}, opts...)
	return New(data, opts...), nil
}

// Path returns the file path the document was opened from, if any.
func (d *Document) Path() string {
	return d.path
}

// Len returns the length in bytes.
func (d *Document) Len() int {
	return len(d.data)
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return len(d.data) == 0
}

// IsBinary reports whether the document is rendered as binary.
func (d *Document) IsBinary() bool {
	return d.binary
}

// LineEnding returns the document's line ending style.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// Bytes returns the full content. Callers must not modify it.
func (d *Document) Bytes() []byte {
	return d.data
}

// Slice returns the bytes in [start, end), clamped to the document.
func (d *Document) Slice(start, end int) []byte {
	start = min(max(start, 0), len(d.data))
	end = min(max(end, start), len(d.data))
	return d.data[start:end]
}

// ByteAt returns the byte at offset.
func (d *Document) ByteAt(offset int) (byte, error) {
	if offset < 0 || offset >= len(d.data) {
		return 0, ErrOffsetOutOfRange
	}
	return d.data[offset], nil
}

// EndsWithNewline reports whether the last byte is '\n'.
func (d *Document) EndsWithNewline() bool {
	return len(d.data) > 0 && d.data[len(d.data)-1] == '\n'
}

// LineStartBefore returns the start of the line containing offset by
// scanning backwards. It does not need the line index.
func (d *Document) LineStartBefore(offset int) int {
	offset = min(max(offset, 0), len(d.data))
	if i := bytes.LastIndexByte(d.data[:offset], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// Index extends the line index so that it covers every line starting at or
// before upTo. It is the only method that mutates the document.
func (d *Document) Index(upTo int) {
	upTo = min(upTo, len(d.data))
	for d.indexedTo < upTo {
		rest := d.data[d.indexedTo:]
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			d.indexedTo = len(d.data)
			return
		}
		d.indexedTo += i + 1
		d.lineStarts = append(d.lineStarts, d.indexedTo)
	}
}

// IndexedTo returns the byte offset the line index covers.
func (d *Document) IndexedTo() int {
	return d.indexedTo
}

// LineNumber returns the 0-based line containing offset. Offsets past the
// indexed range return ErrNotIndexed.
func (d *Document) LineNumber(offset int) (int, error) {
	if offset < 0 || offset > len(d.data) {
		return 0, ErrOffsetOutOfRange
	}
	if offset > d.indexedTo {
		return 0, ErrNotIndexed
	}
	// Largest i with lineStarts[i] <= offset.
	i := sort.SearchInts(d.lineStarts, offset+1) - 1
	return max(i, 0), nil
}

// LineStart returns the byte offset of the given indexed line.
func (d *Document) LineStart(line int) (int, error) {
	if line < 0 || line >= len(d.lineStarts) {
		return 0, ErrNotIndexed
	}
	return d.lineStarts[line], nil
}

// IndexedLineCount returns the number of lines known to the index.
func (d *Document) IndexedLineCount() int {
	return len(d.lineStarts)
}

// Line returns the content of an indexed line without its terminator.
func (d *Document) Line(line int) ([]byte, error) {
	start, err := d.LineStart(line)
	if err != nil {
		return nil, err
	}
	end := len(d.data)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1]
	} else if i := bytes.IndexByte(d.data[start:], '\n'); i >= 0 {
		end = start + i + 1
	}
	text := d.data[start:end]
	text = bytes.TrimSuffix(text, []byte("\n"))
	text = bytes.TrimSuffix(text, []byte("\r"))
	return text, nil
}

// Lines returns an iterator over the lines starting with the one that
// contains start.
func (d *Document) Lines(start int) *LineIter {
	return &LineIter{data: d.data, pos: d.LineStartBefore(start)}
}

// LineIter walks a document line by line. Each line includes its '\n'.
type LineIter struct {
	data []byte
	pos  int
}

// Next returns the next line and the byte offset where it begins. It
// returns false once the document is exhausted.
func (it *LineIter) Next() (int, []byte, bool) {
	if it.pos >= len(it.data) {
		return 0, nil, false
	}
	start := it.pos
	if i := bytes.IndexByte(it.data[start:], '\n'); i >= 0 {
		it.pos = start + i + 1
	} else {
		it.pos = len(it.data)
	}
	return start, it.data[start:it.pos], true
}
