// Package utf8helper provides the codepoint-splitting helper used by the
// associated-phrase lookup to interleave a value's codepoints with its
// readings.
package utf8helper

import "unicode/utf8"

// SplitCodepoints splits s into its Unicode codepoints, each returned as a
// single-rune string. Decoding stops at the first invalid UTF-8 sequence
// rather than aborting: the result up to that point is returned, matching
// the engine's policy of truncating on bad input instead of failing the
// whole operation.
func SplitCodepoints(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		out = append(out, s[i:i+size])
		i += size
	}
	return out
}
