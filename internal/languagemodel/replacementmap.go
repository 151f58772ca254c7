package languagemodel

import (
	"github.com/mcbopomofo/bopomofo-engine/internal/byteblock"
	"github.com/mcbopomofo/bopomofo-engine/internal/mmap"
)

// PhraseReplacementMap backs the phrase-replacement overlay: an exact
// original→replacement lookup loaded from a "key SP value" file, one
// replacement per key (ported from PhraseReplacementMap.h/.cpp, which
// parses this file with ByteBlockBackedDictionary).
type PhraseReplacementMap struct {
	file mmap.File
	dict *byteblock.Dictionary
}

// Open memory-maps path and loads it.
func (r *PhraseReplacementMap) Open(path string) error {
	if err := r.file.Open(path); err != nil {
		return err
	}
	r.Load(r.file.Data())
	return nil
}

// Close drops the loaded map and releases the mapping.
func (r *PhraseReplacementMap) Close() {
	if r.dict != nil {
		r.dict.Clear()
	}
	r.dict = nil
	r.file.Close()
}

// Load parses data ("key SP value" per line) and records the parsing
// issues it found, discarding whatever was previously loaded.
func (r *PhraseReplacementMap) Load(data []byte) []byteblock.Issue {
	dict, issues := byteblock.Parse(data, byteblock.KeyThenValue)
	r.dict = dict
	return issues
}

// ValueForKey returns the first replacement recorded for key, or "" if key
// has no replacement recorded.
func (r *PhraseReplacementMap) ValueForKey(key string) string {
	if r.dict == nil {
		return ""
	}
	values := r.dict.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
