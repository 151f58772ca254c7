package languagemodel

import (
	"github.com/mcbopomofo/bopomofo-engine/internal/keyvalue"
	"github.com/mcbopomofo/bopomofo-engine/internal/mmap"
)

// UserUnigramScore is the fixed moderate score assigned to every unigram
// sourced from a user-phrases file (multi-syllable readings keep this
// score as-is; McBopomofoLM rewrites single-syllable entries separately).
const UserUnigramScore = -1.0

// UserPhrasesLM backs both the user-phrases and excluded-phrases overlays.
// Its file format is "value SP reading" — the reverse of the base LM's
// column order — so loading swaps the columns internally and stores
// reading→[value] (ported from UserPhrasesLM.cpp).
type UserPhrasesLM struct {
	file      mmap.File
	keyRowMap map[string][]string
}

// Open memory-maps path and loads it.
func (lm *UserPhrasesLM) Open(path string) error {
	if err := lm.file.Open(path); err != nil {
		return err
	}
	lm.Load(lm.file.Data())
	return nil
}

// Close drops the loaded map and releases the mapping.
func (lm *UserPhrasesLM) Close() {
	lm.keyRowMap = nil
	lm.file.Close()
}

// Load parses data ("value SP reading" per line) into the reading→[value]
// map, discarding whatever was previously loaded.
func (lm *UserPhrasesLM) Load(data []byte) {
	lm.keyRowMap = make(map[string][]string)

	reader := keyvalue.NewReader(data)
	var kv keyvalue.KeyValue
	for reader.Next(&kv) == keyvalue.HasPair {
		// kv.Key is the first column (the phrase value); kv.Value is the
		// second column (the Bopomofo reading). We index by reading.
		lm.keyRowMap[kv.Value] = append(lm.keyRowMap[kv.Value], kv.Key)
	}
}

// GetUnigrams implements LanguageModel.
func (lm *UserPhrasesLM) GetUnigrams(reading string) []Unigram {
	values := lm.keyRowMap[reading]
	if len(values) == 0 {
		return nil
	}
	result := make([]Unigram, len(values))
	for i, v := range values {
		result[i] = Unigram{Value: v, Score: UserUnigramScore}
	}
	return result
}

// HasUnigrams implements LanguageModel.
func (lm *UserPhrasesLM) HasUnigrams(reading string) bool {
	return len(lm.keyRowMap[reading]) > 0
}
