// Package phrasedb implements a sorted, memory-mapped, binary-searchable
// text database of "reading value score" rows (ported from
// Source/Engine/ParselessPhraseDB in the McBopomofo engine).
//
// The whole non-comment, non-pragma portion of the backing buffer must be
// sorted by byte order on the full line. This lets every query run by
// binary search directly over the mapped bytes, with zero heap copies:
// FindFirstMatchingLine returns a byte offset into the backing buffer, and
// FindRows returns slices that alias it.
package phrasedb

import (
	"bytes"
	"errors"
)

// SortedPragmaHeader is the required first line of a sorted phrase file.
const SortedPragmaHeader = "# format org.openvanilla.mcbopomofo.sorted\n"

// ErrMalformedPragma is returned by Open when pragma validation is
// requested and the buffer does not begin with SortedPragmaHeader.
var ErrMalformedPragma = errors.New("phrasedb: missing or malformed sorted pragma header")

// ErrEmptyBuffer is returned by Open when the buffer is nil or zero length.
var ErrEmptyBuffer = errors.New("phrasedb: empty buffer")

// DB is a sorted phrase database backed by a contiguous byte buffer,
// typically a memory-mapped file. The zero value is not usable; construct
// with Open.
type DB struct {
	data []byte
}

// Open constructs a DB over data. When validatePragma is true, data must
// begin with SortedPragmaHeader; the header is then skipped from the
// searchable region.
func Open(data []byte, validatePragma bool) (*DB, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}

	body := data
	if validatePragma {
		if !bytes.HasPrefix(data, []byte(SortedPragmaHeader)) {
			return nil, ErrMalformedPragma
		}
		body = data[len(SortedPragmaHeader):]
	}

	return &DB{data: body}, nil
}

// lineStart backs up from offset to the start of the line it is within
// (the byte after the preceding '\n', or 0 if offset is in the first line).
func lineStart(data []byte, offset int) int {
	for offset > 0 && data[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEnd returns the offset of the '\n' terminating the line starting at
// start, or len(data) if the line is unterminated (last line in the file).
func lineEnd(data []byte, start int) int {
	idx := bytes.IndexByte(data[start:], '\n')
	if idx < 0 {
		return len(data)
	}
	return start + idx
}

// hasPrefixAt reports whether the line beginning at start has key as a
// byte-prefix.
func hasPrefixAt(data []byte, start int, key []byte) bool {
	end := start + len(key)
	if end > len(data) {
		return false
	}
	return bytes.Equal(data[start:end], key)
}

// lineLess reports whether the line at start is strictly less than key
// when compared byte-wise up to len(key) bytes (or the whole line, if
// shorter than key).
func lineLess(data []byte, start int, key []byte) bool {
	end := lineEnd(data, start)
	line := data[start:end]
	n := len(key)
	if len(line) < n {
		n = len(line)
	}
	cmp := bytes.Compare(line[:n], key[:n])
	if cmp != 0 {
		return cmp < 0
	}
	return len(line) < len(key)
}

// FindFirstMatchingLine returns the byte offset of the first line (in file
// order) whose byte-prefix equals key, or -1 if no such line exists.
//
// The binary search probes the midpoint, backs up to that probe's line
// start, and compares the first len(key) bytes of the line to key. On an
// exact prefix match it additionally inspects the previous line: if that
// previous line is strictly less than key, the current line is the first
// match; otherwise the search continues in the lower half to find an
// earlier match among duplicates.
func (db *DB) FindFirstMatchingLine(key string) int {
	if key == "" {
		return -1
	}
	k := []byte(key)
	data := db.data

	lo, hi := 0, len(data)
	for lo < hi {
		mid := lo + (hi-lo)/2
		start := lineStart(data, mid)

		switch {
		case hasPrefixAt(data, start, k):
			if start == 0 {
				return start
			}
			prevStart := lineStart(data, start-1)
			if lineLess(data, prevStart, k) {
				return start
			}
			hi = start
		case lineLess(data, start, k):
			lo = lineEnd(data, start) + 1
			if lo > len(data) {
				lo = len(data)
			}
		default:
			hi = start
		}
	}
	return -1
}

// FindRows returns every row (as a slice aliasing the backing buffer, sans
// trailing newline) whose byte-prefix equals key, in file order.
func (db *DB) FindRows(key string) [][]byte {
	start := db.FindFirstMatchingLine(key)
	if start < 0 {
		return nil
	}

	k := []byte(key)
	data := db.data
	var rows [][]byte
	for start < len(data) && hasPrefixAt(data, start, k) {
		end := lineEnd(data, start)
		rows = append(rows, data[start:end])
		start = end + 1
	}
	return rows
}

// ReverseFindRows scans the whole buffer (O(n)) looking for rows whose
// value column (the text after the first space-delimited key) has value as
// a byte-prefix. It returns copies of the matching whole lines, since the
// linear scan doesn't produce a contiguous aliasable run the way FindRows
// does.
func (db *DB) ReverseFindRows(value string) []string {
	v := []byte(value)
	data := db.data
	var results []string

	start := 0
	for start < len(data) {
		end := lineEnd(data, start)
		line := data[start:end]

		sp := bytes.IndexByte(line, ' ')
		if sp >= 0 {
			rest := line[sp+1:]
			if bytes.HasPrefix(rest, v) {
				results = append(results, string(line))
			}
		}

		start = end + 1
	}
	return results
}
