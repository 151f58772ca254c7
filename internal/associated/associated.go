// Package associated implements the two associated-phrase lookups: V1
// (single-character key, byte-block-dictionary backed) and V2
// (multi-syllable value-reading prefix key, sorted-DB backed), sharing the
// value/reading interleaving helpers (ported from AssociatedPhrasesV2.h/
// .cpp; V1 has no surviving original_source file and is modeled directly
// on a byte-block dictionary keyed by a single character).
package associated

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mcbopomofo/bopomofo-engine/internal/byteblock"
	"github.com/mcbopomofo/bopomofo-engine/internal/mmap"
	"github.com/mcbopomofo/bopomofo-engine/internal/phrasedb"
	"github.com/mcbopomofo/bopomofo-engine/internal/utf8helper"
)

const separator = "-"

// Phrase is one associated-phrase result: the whole phrase value, prefix
// included, together with the per-character readings that produced it.
type Phrase struct {
	Value    string
	Readings []string
}

// CombinedReading joins Readings with the separator, e.g.
// ["ㄕㄨ", "ㄖㄨˋ"] -> "ㄕㄨ-ㄖㄨˋ".
func (p Phrase) CombinedReading() string {
	return CombineReadings(p.Readings)
}

// SplitReadings splits a separator-joined reading compound back into its
// component readings, e.g. "ㄕㄨ-ㄖㄨˋ" -> ["ㄕㄨ", "ㄖㄨˋ"].
func SplitReadings(combined string) []string {
	if combined == "" {
		return nil
	}
	return strings.Split(combined, separator)
}

// CombineReadings joins readings with the separator.
func CombineReadings(readings []string) string {
	return strings.Join(readings, separator)
}

// V1 is the legacy single-character-key associated-phrase index, backed by
// a byte-block dictionary mapping one Chinese character to its ranked
// continuations.
type V1 struct {
	file mmap.File
	dict *byteblock.Dictionary
}

// Open memory-maps path and parses it as a byte-block dictionary in
// KeyThenValue order.
func (v *V1) Open(path string) error {
	if err := v.file.Open(path); err != nil {
		return err
	}
	dict, _ := byteblock.Parse(v.file.Data(), byteblock.KeyThenValue)
	v.dict = dict
	return nil
}

// Close releases the mapping.
func (v *V1) Close() {
	if v.dict != nil {
		v.dict.Clear()
	}
	v.dict = nil
	v.file.Close()
}

// FindPhrases returns the continuations recorded for the single character
// key.
func (v *V1) FindPhrases(key string) []string {
	if v.dict == nil {
		return nil
	}
	return v.dict.Get(key)
}

// V2 is the sorted-DB-backed associated-phrase index, keyed on
// "v1-r1-v2-r2-...-vn-rn-" prefixes.
type V2 struct {
	file mmap.File
	db   *phrasedb.DB
}

// Open memory-maps path and opens it as a sorted phrase database.
func (v *V2) Open(path string) error {
	if err := v.file.Open(path); err != nil {
		return err
	}
	db, err := phrasedb.Open(v.file.Data(), true)
	if err != nil {
		v.file.Close()
		return err
	}
	v.db = db
	return nil
}

// OpenDB wires up an already-constructed in-memory database.
func (v *V2) OpenDB(db *phrasedb.DB) {
	v.db = db
}

// Close releases the mapping.
func (v *V2) Close() {
	v.db = nil
	v.file.Close()
}

// FindPhrases returns associated phrases continuing prefixValue/
// prefixReadings, ranked by descending score and de-duplicated by value
// (first-seen wins).
//
// As a degenerate legacy case, a single-codepoint prefixValue may be given
// with an empty prefixReadings; this behaves like the old V1 lookup,
// searching by character alone rather than by character+reading.
func (v *V2) FindPhrases(prefixValue string, prefixReadings []string) []Phrase {
	if v.db == nil {
		return nil
	}

	chars := utf8helper.SplitCodepoints(prefixValue)

	var internalPrefix string
	if len(prefixReadings) == 0 && len(chars) == 1 {
		internalPrefix = chars[0] + separator
	} else {
		if len(chars) != len(prefixReadings) {
			return nil
		}
		var b strings.Builder
		for i, ch := range chars {
			b.WriteString(ch)
			b.WriteString(separator)
			b.WriteString(prefixReadings[i])
			b.WriteString(separator)
		}
		internalPrefix = b.String()
	}

	return v.findPhrasesByPrefix(internalPrefix)
}

func (v *V2) findPhrasesByPrefix(internalPrefix string) []Phrase {
	rows := v.db.FindRows(internalPrefix)

	type scored struct {
		phrase Phrase
		score  float64
	}
	var all []scored
	for _, row := range rows {
		p, score, ok := parseAssociatedRow(string(row))
		if ok {
			all = append(all, scored{phrase: p, score: score})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	seen := make(map[string]bool)
	var results []Phrase
	for _, s := range all {
		if seen[s.phrase.Value] {
			continue
		}
		seen[s.phrase.Value] = true
		results = append(results, s.phrase)
	}
	return results
}

// parseAssociatedRow parses a row of the form "v1-r1-v2-r2-...-vn-rn SP
// score" into the full Phrase it names (value and readings for every
// v-r pair in the key, prefix included) and its score, matching
// PhraseFromRow's alternating value/reading state machine.
func parseAssociatedRow(row string) (Phrase, float64, bool) {
	sp := strings.IndexByte(row, ' ')
	if sp < 0 {
		return Phrase{}, 0, false
	}
	key := row[:sp]
	scoreStr := row[sp+1:]
	score, _ := strconv.ParseFloat(scoreStr, 64)

	tokens := strings.Split(key, separator)
	var value strings.Builder
	var readings []string
	for i, tok := range tokens {
		if i%2 == 0 {
			value.WriteString(tok)
		} else {
			readings = append(readings, tok)
		}
	}

	if value.Len() == 0 {
		return Phrase{}, 0, false
	}

	return Phrase{Value: value.String(), Readings: readings}, score, true
}
