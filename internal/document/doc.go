// Package document provides the read-only byte buffer the view pipeline
// renders from.
//
// A Document owns the raw bytes of a file together with the facts the
// renderer needs about them:
//
//   - the dominant line ending (LF, CRLF or CR)
//   - whether the content is binary
//   - a line-offset index for byte → line lookups
//
// The line index is populated in an explicit step. Index(upTo) scans the
// bytes and records line starts; the query methods (LineNumber, LineStart,
// Line) only read what has been indexed. A render pass therefore calls
// Index once up front and then borrows the document immutably.
//
// Basic usage:
//
//	doc := document.FromString("one\r\ntwo\r\n")
//	doc.LineEnding()          // LineEndingCRLF
//	it := doc.Lines(5)        // starts at the line containing byte 5
//	for off, line, ok := it.Next(); ok; off, line, ok = it.Next() {
//	    ...
//	}
package document
