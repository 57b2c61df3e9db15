package document

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns a readable name for the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "LF"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding maps "lf", "crlf" or "cr" (any case) to a LineEnding.
func ParseLineEnding(s string) (LineEnding, bool) {
	switch s {
	case "lf", "LF", "unix":
		return LineEndingLF, true
	case "crlf", "CRLF", "windows":
		return LineEndingCRLF, true
	case "cr", "CR", "mac":
		return LineEndingCR, true
	}
	return LineEndingLF, false
}

// detectSampleSize bounds how much of a document is examined when guessing
// its line ending or whether it is binary.
const detectSampleSize = 8 * 1024

// DetectLineEnding returns the line ending that occurs most often in the
// first 8 KiB of data. Ties and documents without line endings are LF.
func DetectLineEnding(data []byte) LineEnding {
	if len(data) > detectSampleSize {
		data = data[:detectSampleSize]
	}

	var lf, crlf, cr int
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}

	switch {
	case crlf > lf && crlf > cr:
		return LineEndingCRLF
	case cr > lf && cr > crlf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}
