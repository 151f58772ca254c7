package overridemodel

import (
	"testing"

	"github.com/mcbopomofo/bopomofo-engine/internal/grid"
	"github.com/mcbopomofo/bopomofo-engine/internal/languagemodel"
	"github.com/mcbopomofo/bopomofo-engine/internal/walker"
)

type fakeLM struct {
	unigrams map[string][]languagemodel.Unigram
}

func (f *fakeLM) GetUnigrams(reading string) []languagemodel.Unigram {
	return f.unigrams[reading]
}

func (f *fakeLM) HasUnigrams(reading string) bool {
	return len(f.unigrams[reading]) > 0
}

func newTestLM() *fakeLM {
	return &fakeLM{unigrams: map[string][]languagemodel.Unigram{
		"ㄍㄠ":     {{Value: "高", Score: -1}, {Value: "告", Score: -2}},
		"ㄒㄧㄥ":    {{Value: "興", Score: -1}, {Value: "行", Score: -2}},
		"ㄍㄠ-ㄒㄧㄥ": {{Value: "高興", Score: -100}},
	}}
}

func buildWalk(t *testing.T, readings ...string) (*grid.Grid, walker.Result) {
	t.Helper()
	g := grid.New(newTestLM())
	for _, r := range readings {
		if !g.InsertReading(r) {
			t.Fatalf("failed to insert reading %q", r)
		}
	}
	return g, walker.Walk(g)
}

func TestObserveAndSuggestSameLengthOverride(t *testing.T) {
	g, before := buildWalk(t, "ㄍㄠ", "ㄒㄧㄥ")
	if len(before.Nodes) != 2 {
		t.Fatalf("expected 2 single-character nodes before override, got %d", len(before.Nodes))
	}

	if !g.OverrideCandidateValue(1, "行", grid.OverrideValueWithHighScore) {
		t.Fatal("expected override to succeed")
	}
	after := walker.Walk(g)

	m := New(5, 3600)
	m.Observe(before, after, 1, 1000)

	suggestion := m.Suggest(after, 1, 1000)
	if suggestion.Candidate != "行" {
		t.Fatalf("expected suggestion 行, got %+v", suggestion)
	}
	if suggestion.ForceHighScoreOverride {
		t.Fatal("same-spanning-length override should not force a high score")
	}
}

func TestObserveForcesHighScoreWhenPhraseWinsOverCharacters(t *testing.T) {
	lm := &fakeLM{unigrams: map[string][]languagemodel.Unigram{
		"ㄍㄠ":     {{Value: "高", Score: -1}},
		"ㄒㄧㄥ":    {{Value: "興", Score: -1}},
		"ㄍㄠ-ㄒㄧㄥ": {{Value: "高興", Score: -100}},
	}}
	g := grid.New(lm)
	g.InsertReading("ㄍㄠ")
	g.InsertReading("ㄒㄧㄥ")
	before := walker.Walk(g)
	if len(before.Nodes) != 2 {
		t.Fatalf("expected two single-character nodes before override, got %d", len(before.Nodes))
	}

	if !g.OverrideCandidateValue(0, "高興", grid.OverrideValueWithHighScore) {
		t.Fatal("expected override to the combined phrase to succeed")
	}
	after := walker.Walk(g)
	if len(after.Nodes) != 1 || after.Nodes[0].Value() != "高興" {
		t.Fatalf("expected the walk after override to collapse to the combined phrase, got %v", after.ValuesAsStrings())
	}

	m := New(5, 3600)
	m.Observe(before, after, 1, 1000)

	suggestion := m.Suggest(before, 1, 1000)
	if suggestion.Candidate != "高興" {
		t.Fatalf("expected suggestion 高興, got %+v", suggestion)
	}
	if !suggestion.ForceHighScoreOverride {
		t.Fatal("expected a phrase winning over characters to force a high-score override")
	}
}

func TestSuggestDecaysToNothingOverTime(t *testing.T) {
	_, before := buildWalk(t, "ㄍㄠ", "ㄒㄧㄥ")
	g, _ := buildWalk(t, "ㄍㄠ", "ㄒㄧㄥ")
	g.OverrideCandidateValue(1, "行", grid.OverrideValueWithHighScore)
	after := walker.Walk(g)

	m := New(5, 1)
	m.Observe(before, after, 1, 0)

	suggestion := m.Suggest(after, 1, 0)
	if suggestion.Candidate != "行" {
		t.Fatalf("expected an immediate suggestion, got %+v", suggestion)
	}

	stale := m.Suggest(after, 1, 1000)
	if stale.Candidate != "" {
		t.Fatalf("expected the suggestion to have fully decayed after a long interval, got %+v", stale)
	}
}

func TestModelEvictsLeastRecentlyUsedContext(t *testing.T) {
	m := New(1, 3600)

	_, before1 := buildWalk(t, "ㄍㄠ", "ㄒㄧㄥ")
	g1, _ := buildWalk(t, "ㄍㄠ", "ㄒㄧㄥ")
	g1.OverrideCandidateValue(1, "行", grid.OverrideValueWithHighScore)
	after1 := walker.Walk(g1)
	m.Observe(before1, after1, 1, 0)

	g2, before2 := buildWalk(t, "ㄍㄠ")
	g2.OverrideCandidateValue(0, "告", grid.OverrideValueWithHighScore)
	after2 := walker.Walk(g2)
	m.Observe(before2, after2, 0, 0)

	if suggestion := m.Suggest(after1, 1, 0); suggestion.Candidate != "" {
		t.Fatalf("expected the first context to have been evicted, got %+v", suggestion)
	}
	if suggestion := m.Suggest(after2, 0, 0); suggestion.Candidate != "告" {
		t.Fatalf("expected the second context to still be suggested, got %+v", suggestion)
	}
}

func TestFormObservationKeyHandlesStartOfGrid(t *testing.T) {
	_, before := buildWalk(t, "ㄍㄠ")
	key := formObservationKey(before.Nodes, 0)
	if key == "" {
		t.Fatal("expected a non-empty key")
	}
	if key[:len(emptyNodeString)+1] != emptyNodeString+"-" {
		t.Fatalf("expected the key to start with the empty-anterior placeholder, got %q", key)
	}
}
