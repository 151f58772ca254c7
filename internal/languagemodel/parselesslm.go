package languagemodel

import (
	"strconv"

	"github.com/mcbopomofo/bopomofo-engine/internal/mmap"
	"github.com/mcbopomofo/bopomofo-engine/internal/phrasedb"
)

// ParselessLM wraps a sorted phrasedb.DB and exposes it as a LanguageModel.
// Every row in the backing file has the shape "reading SP value SP score"
// (ported from ParselessLM.cpp).
type ParselessLM struct {
	file mmap.File
	db   *phrasedb.DB
}

// IsLoaded reports whether a database is currently open.
func (lm *ParselessLM) IsLoaded() bool {
	return lm.db != nil
}

// Open memory-maps path and wires it up as the backing sorted database,
// validating the sorted-pragma header.
func (lm *ParselessLM) Open(path string) error {
	if err := lm.file.Open(path); err != nil {
		return err
	}
	db, err := phrasedb.Open(lm.file.Data(), true)
	if err != nil {
		lm.file.Close()
		return err
	}
	lm.db = db
	return nil
}

// OpenDB wires up an already-constructed in-memory database, for tests and
// embedders that have the bytes in hand.
func (lm *ParselessLM) OpenDB(db *phrasedb.DB) {
	lm.db = db
}

// Close releases the backing mapping and drops the database.
func (lm *ParselessLM) Close() {
	lm.file.Close()
	lm.db = nil
}

// GetUnigrams implements LanguageModel.
func (lm *ParselessLM) GetUnigrams(reading string) []Unigram {
	if lm.db == nil {
		return nil
	}

	rows := lm.db.FindRows(reading + " ")
	var results []Unigram
	for _, row := range rows {
		value, score := parseValueScore(row)
		results = append(results, Unigram{Value: value, Score: score})
	}
	return results
}

// HasUnigrams implements LanguageModel.
func (lm *ParselessLM) HasUnigrams(reading string) bool {
	if lm.db == nil {
		return false
	}
	return lm.db.FindFirstMatchingLine(reading+" ") >= 0
}

// FoundReading pairs a reading with the score of the row it came from,
// returned by GetReadings.
type FoundReading struct {
	Reading string
	Score   float64
}

// GetReadings looks up every reading that maps to value, the inverse of
// GetUnigrams. It is specific to ParselessLM: the base LM is the only
// component whose sorted DB supports the O(n) reverse scan.
func (lm *ParselessLM) GetReadings(value string) []FoundReading {
	if lm.db == nil {
		return nil
	}

	rows := lm.db.ReverseFindRows(value + " ")
	var results []FoundReading
	for _, row := range rows {
		reading, score := parseKeyScore([]byte(row))
		results = append(results, FoundReading{Reading: reading, Score: score})
	}
	return results
}

// parseValueScore splits a "key value score" row (with key already known
// and consumed by the caller's query prefix) into its value and score
// columns.
func parseValueScore(row []byte) (string, float64) {
	i := 0
	for i < len(row) && row[i] != ' ' {
		i++
	}
	if i < len(row) {
		i++ // past the space separating key from value
	}
	valueStart := i
	for i < len(row) && row[i] != ' ' {
		i++
	}
	value := string(row[valueStart:i])

	if i < len(row) {
		i++ // past the space separating value from score
	}
	score := 0.0
	if i < len(row) {
		score, _ = strconv.ParseFloat(string(row[i:]), 64)
	}
	return value, score
}

// parseKeyScore splits a "key value score" row into its key and score
// columns, skipping over the value column in between.
func parseKeyScore(row []byte) (string, float64) {
	i := 0
	for i < len(row) && row[i] != ' ' {
		i++
	}
	key := string(row[:i])

	if i < len(row) {
		i++
	}
	for i < len(row) && row[i] != ' ' {
		i++
	}
	if i < len(row) {
		i++
	}
	score := 0.0
	if i < len(row) {
		score, _ = strconv.ParseFloat(string(row[i:]), 64)
	}
	return key, score
}
