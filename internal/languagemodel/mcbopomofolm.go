package languagemodel

import (
	"sort"
	"strings"

	"github.com/mcbopomofo/bopomofo-engine/internal/associated"
)

// userOverrideScoreEpsilon nudges a single-syllable user-phrase unigram's
// score just above whatever the base model reports for the same reading,
// so a single-character user override always outranks the stock
// candidate without needing to know the base model's scale in advance
// (ported from McBopomofoLM::GetUnigrams).
const userOverrideScoreEpsilon = 0.001

// macroPrefix marks a base-LM value as a deferred macro expansion, e.g.
// "MACRO@DATE_TODAY_SHORT".
const macroPrefix = "MACRO@"

// McBopomofoLM is the composite LanguageModel consumed by the reading
// grid: a base sorted-DB model overlaid with user phrases, excluded
// phrases, a phrase-replacement map, an associated-phrases V2 index, and
// optional macro/external converters (ported from McBopomofoLM.h/.cpp).
type McBopomofoLM struct {
	languageModel     ParselessLM
	userPhrases       UserPhrasesLM
	excludedPhrases   UserPhrasesLM
	phraseReplacement PhraseReplacementMap
	associatedPhrases associated.V2

	associatedPhrasesLoaded bool

	phraseReplacementEnabled bool
	externalConverterEnabled bool
	externalConverter        func(string) string
	macroConverter           func(string) string
}

// LoadLanguageModel memory-maps path as the base sorted phrase database.
func (lm *McBopomofoLM) LoadLanguageModel(path string) error {
	return lm.languageModel.Open(path)
}

// IsDataModelLoaded reports whether the base language model is loaded.
func (lm *McBopomofoLM) IsDataModelLoaded() bool {
	return lm.languageModel.IsLoaded()
}

// LoadAssociatedPhrasesV2 memory-maps path as the associated-phrases V2
// sorted database.
func (lm *McBopomofoLM) LoadAssociatedPhrasesV2(path string) error {
	if err := lm.associatedPhrases.Open(path); err != nil {
		return err
	}
	lm.associatedPhrasesLoaded = true
	return nil
}

// IsAssociatedPhrasesV2Loaded reports whether an associated-phrases V2
// database is loaded.
func (lm *McBopomofoLM) IsAssociatedPhrasesV2Loaded() bool {
	return lm.associatedPhrasesLoaded
}

// LoadUserPhrases loads the user-phrases overlay from userPath and the
// excluded-phrases overlay from excludedPath. Either path may be empty,
// in which case that overlay is cleared.
func (lm *McBopomofoLM) LoadUserPhrases(userPath, excludedPath string) error {
	lm.userPhrases.Close()
	lm.excludedPhrases.Close()

	if userPath != "" {
		if err := lm.userPhrases.Open(userPath); err != nil {
			return err
		}
	}
	if excludedPath != "" {
		if err := lm.excludedPhrases.Open(excludedPath); err != nil {
			return err
		}
	}
	return nil
}

// LoadUserPhrasesData loads the user-phrases and excluded-phrases overlays
// directly from in-memory buffers, for tests and embedders that keep the
// bytes in hand rather than a file on disk.
func (lm *McBopomofoLM) LoadUserPhrasesData(userData, excludedData []byte) {
	if userData != nil {
		lm.userPhrases.Load(userData)
	} else {
		lm.userPhrases.Load(nil)
	}
	if excludedData != nil {
		lm.excludedPhrases.Load(excludedData)
	} else {
		lm.excludedPhrases.Load(nil)
	}
}

// LoadPhraseReplacementMap loads the phrase-replacement overlay from path.
func (lm *McBopomofoLM) LoadPhraseReplacementMap(path string) error {
	return lm.phraseReplacement.Open(path)
}

// SetPhraseReplacementEnabled toggles whether GetUnigrams rewrites values
// through the phrase-replacement map.
func (lm *McBopomofoLM) SetPhraseReplacementEnabled(enabled bool) {
	lm.phraseReplacementEnabled = enabled
}

// PhraseReplacementEnabled reports the current phrase-replacement toggle.
func (lm *McBopomofoLM) PhraseReplacementEnabled() bool {
	return lm.phraseReplacementEnabled
}

// SetExternalConverterEnabled toggles whether GetUnigrams runs values
// through the external converter.
func (lm *McBopomofoLM) SetExternalConverterEnabled(enabled bool) {
	lm.externalConverterEnabled = enabled
}

// ExternalConverterEnabled reports the current external-converter toggle.
func (lm *McBopomofoLM) ExternalConverterEnabled() bool {
	return lm.externalConverterEnabled
}

// SetExternalConverter installs the external converter function, typically
// a script or dialect converter supplied by the host application.
func (lm *McBopomofoLM) SetExternalConverter(converter func(string) string) {
	lm.externalConverter = converter
}

// SetMacroConverter installs the macro converter function, applied to any
// base-LM value carrying the macroPrefix.
func (lm *McBopomofoLM) SetMacroConverter(converter func(string) string) {
	lm.macroConverter = converter
}

// ConvertMacro runs value through the installed macro converter if value
// begins with macroPrefix; otherwise it returns value unchanged.
func (lm *McBopomofoLM) ConvertMacro(value string) string {
	if !strings.HasPrefix(value, macroPrefix) {
		return value
	}
	if lm.macroConverter == nil {
		return value
	}
	return lm.macroConverter(value)
}

// GetUnigrams implements LanguageModel. It layers, in order: excluded-value
// filtering, user-phrase unigrams (score-adjusted) ahead of base-model
// unigrams (filtered against the same exclusion set), followed by macro
// expansion, optional external conversion, and de-duplication by value
// with first-occurrence order preserved (ported from
// McBopomofoLM::GetUnigrams).
func (lm *McBopomofoLM) GetUnigrams(reading string) []Unigram {
	excludedValues := make(map[string]bool)
	for _, u := range lm.excludedPhrases.GetUnigrams(reading) {
		excludedValues[u.Value] = true
	}

	userUnigrams := lm.userPhrases.GetUnigrams(reading)
	isSingleSyllable := !strings.Contains(reading, "-")

	var maxBaseScore float64
	baseUnigrams := lm.languageModel.GetUnigrams(reading)
	for i, u := range baseUnigrams {
		if i == 0 || u.Score > maxBaseScore {
			maxBaseScore = u.Score
		}
	}

	var results []Unigram
	for _, u := range userUnigrams {
		if excludedValues[u.Value] {
			continue
		}
		if isSingleSyllable {
			u.Score = maxBaseScore + userOverrideScoreEpsilon
		}
		results = append(results, u)
	}

	for _, u := range baseUnigrams {
		if excludedValues[u.Value] {
			continue
		}
		results = append(results, u)
	}

	seen := make(map[string]bool)
	var deduped []Unigram
	for _, u := range results {
		u.Value = lm.convertValue(u.Value)
		if seen[u.Value] {
			continue
		}
		seen[u.Value] = true
		deduped = append(deduped, u)
	}
	return deduped
}

// convertValue applies macro expansion, then phrase replacement, then the
// external converter, in that order — each stage optional depending on
// its toggle and whether a converter/map is installed.
func (lm *McBopomofoLM) convertValue(value string) string {
	value = lm.ConvertMacro(value)

	if lm.phraseReplacementEnabled {
		if replacement := lm.phraseReplacement.ValueForKey(value); replacement != "" {
			value = replacement
		}
	}

	if lm.externalConverterEnabled && lm.externalConverter != nil {
		value = lm.externalConverter(value)
	}

	return value
}

// HasUnigrams implements LanguageModel.
func (lm *McBopomofoLM) HasUnigrams(reading string) bool {
	if lm.userPhrases.HasUnigrams(reading) {
		return true
	}
	return lm.languageModel.HasUnigrams(reading)
}

// GetReading returns every Bopomofo reading recorded for value in the base
// model, most-likely-scored first.
func (lm *McBopomofoLM) GetReading(value string) []FoundReading {
	readings := lm.languageModel.GetReadings(value)
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Score > readings[j].Score
	})
	return readings
}

// FindAssociatedPhrasesV2 looks up continuations for the phrase ending in
// prefixValue with the given per-character prefixReadings.
func (lm *McBopomofoLM) FindAssociatedPhrasesV2(prefixValue string, prefixReadings []string) []associated.Phrase {
	return lm.associatedPhrases.FindPhrases(prefixValue, prefixReadings)
}

// Close releases every backing mapping held by the composite model.
func (lm *McBopomofoLM) Close() {
	lm.languageModel.Close()
	lm.userPhrases.Close()
	lm.excludedPhrases.Close()
	lm.phraseReplacement.Close()
	lm.associatedPhrases.Close()
	lm.associatedPhrasesLoaded = false
}
