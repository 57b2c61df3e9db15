package document

import (
	enry "github.com/go-enry/go-enry/v2"
)

// IsBinary reports whether data looks like binary content.
//
// The first 8 KiB are examined. NUL bytes (found by enry) mark the content
// as binary, as does any C0 control character other than tab, LF, CR, form
// feed, vertical tab and ESC, or DEL. Escape sequences (ESC [ ... and
// ESC ] ...) are skipped so that captured terminal output is treated as
// text.
func IsBinary(data []byte) bool {
	if len(data) > detectSampleSize {
		data = data[:detectSampleSize]
	}
	if enry.IsBinary(data) {
		return true
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == 0x1b && i+1 < len(data) && (data[i+1] == '[' || data[i+1] == ']') {
			i += 2
			for i < len(data) && (data[i] < 0x40 || data[i] > 0x7e) {
				i++
			}
			continue
		}
		if isBinaryControl(b) {
			return true
		}
	}
	return false
}

func isBinaryControl(b byte) bool {
	if b == 0x7f {
		return true
	}
	if b >= 0x20 {
		return false
	}
	switch b {
	case '\t', '\n', '\r', 0x0b, 0x0c, 0x1b:
		return false
	}
	return true
}
