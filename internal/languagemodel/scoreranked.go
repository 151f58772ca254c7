package languagemodel

import "sort"

// ScoreRankedLanguageModel wraps another LanguageModel and stable-sorts its
// GetUnigrams result by descending score before returning it, so that
// ties preserve the wrapped model's own ordering (ported from
// ScoreRankedLanguageModel in gramambular2/reading_grid.h).
type ScoreRankedLanguageModel struct {
	Inner LanguageModel
}

// GetUnigrams implements LanguageModel.
func (m *ScoreRankedLanguageModel) GetUnigrams(reading string) []Unigram {
	unigrams := m.Inner.GetUnigrams(reading)
	if len(unigrams) < 2 {
		return unigrams
	}

	sorted := make([]Unigram, len(unigrams))
	copy(sorted, unigrams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// HasUnigrams implements LanguageModel.
func (m *ScoreRankedLanguageModel) HasUnigrams(reading string) bool {
	return m.Inner.HasUnigrams(reading)
}
