// Package languagemodel implements the composite language model: the
// sorted-DB-backed base model, user/excluded phrase overlays, the phrase
// replacement map, and the McBopomofoLM facade that merges them all
// (ported from gramambular2/language_model.h, ParselessLM.cpp,
// UserPhrasesLM.cpp, PhraseReplacementMap.h, and McBopomofoLM.h/.cpp).
package languagemodel

// Unigram is an immutable (value, score) pair, where score is usually a
// log-probability taken from a language model; larger is more likely.
type Unigram struct {
	Value string
	Score float64
}

// LanguageModel is the interface the reading grid consults for candidates
// at a given reading. Implementations must be total: GetUnigrams returns
// an empty slice (never an error) when the reading is unknown.
type LanguageModel interface {
	GetUnigrams(reading string) []Unigram
	HasUnigrams(reading string) bool
}
