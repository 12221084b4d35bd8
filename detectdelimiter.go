package methylage

import (
	"bufio"
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// DelimiterSniffBytes is how much of a table is inspected when guessing its
// delimiter.
const DelimiterSniffBytes = 16 * 1024

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in prefix, assuming a CSV-like file. Comma is returned when nothing
// better can be found.
func DetermineDelimiter(prefix []byte) rune {
	// A header line with tabs is unambiguous, and the detector tends to favor
	// commas found inside quoted sample names.
	if line, _, _ := bytes.Cut(prefix, []byte{'\n'}); bytes.IndexByte(line, '\t') >= 0 {
		return '\t'
	}

	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(prefix), '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// PeekDelimiter guesses the delimiter of the table behind r without consuming
// any of it.
func PeekDelimiter(r *bufio.Reader) rune {
	// Peek returns what it can along with io.EOF for short inputs, which is
	// fine here.
	prefix, _ := r.Peek(DelimiterSniffBytes)

	return DetermineDelimiter(prefix)
}
