package walker

import (
	"testing"

	"github.com/mcbopomofo/bopomofo-engine/internal/grid"
	"github.com/mcbopomofo/bopomofo-engine/internal/languagemodel"
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

// newSegmentationLM favors walking through the 2-syllable combined phrase
// "高興" over two free-standing single-character nodes, by giving the
// combined node a higher score than the sum of its parts.
func newSegmentationLM() *fakeLM {
	return &fakeLM{unigrams: map[string][]languagemodel.Unigram{
		"ㄍㄠ":     {{Value: "高", Score: -1}},
		"ㄒㄧㄥ":    {{Value: "興", Score: -1}},
		"ㄍㄠ-ㄒㄧㄥ": {{Value: "高興", Score: -1}},
	}}
}

func TestWalkEmptyGrid(t *testing.T) {
	g := grid.New(newSegmentationLM())
	result := Walk(g)
	if len(result.Nodes) != 0 {
		t.Fatalf("expected no nodes for an empty grid, got %d", len(result.Nodes))
	}
}

func TestWalkPrefersHigherScoringSegmentation(t *testing.T) {
	g := grid.New(newSegmentationLM())
	g.InsertReading("ㄍㄠ")
	g.InsertReading("ㄒㄧㄥ")

	result := Walk(g)
	values := result.ValuesAsStrings()
	if len(values) != 1 || values[0] != "高興" {
		t.Fatalf("expected the single combined-phrase walk, got %v", values)
	}
	if result.TotalReadings != 2 {
		t.Fatalf("expected TotalReadings=2, got %d", result.TotalReadings)
	}
}

func TestWalkFallsBackToSingleCharacters(t *testing.T) {
	lm := &fakeLM{unigrams: map[string][]languagemodel.Unigram{
		"ㄍㄠ":     {{Value: "高", Score: -1}},
		"ㄒㄧㄥ":    {{Value: "興", Score: -1}},
		"ㄍㄠ-ㄒㄧㄥ": {{Value: "高興", Score: -100}},
	}}
	g := grid.New(lm)
	g.InsertReading("ㄍㄠ")
	g.InsertReading("ㄒㄧㄥ")

	result := Walk(g)
	values := result.ValuesAsStrings()
	if len(values) != 2 || values[0] != "高" || values[1] != "興" {
		t.Fatalf("expected two single-character nodes, got %v", values)
	}
}

func TestWalkPostConditionSpanningLengthSum(t *testing.T) {
	g := grid.New(newSegmentationLM())
	g.InsertReading("ㄍㄠ")
	g.InsertReading("ㄒㄧㄥ")

	result := Walk(g)
	sum := 0
	for _, n := range result.Nodes {
		sum += n.SpanningLength()
	}
	if sum != result.TotalReadings || sum != g.Length() {
		t.Fatalf("sum of spanning lengths = %d, want %d (TotalReadings) and %d (grid length)", sum, result.TotalReadings, g.Length())
	}
}

func TestFindNodeAt(t *testing.T) {
	g := grid.New(newSegmentationLM())
	g.InsertReading("ㄍㄠ")
	g.InsertReading("ㄒㄧㄥ")

	result := Walk(g)
	node, ok := result.FindNodeAt(0, nil)
	if !ok || node.Value() != "高興" {
		t.Fatalf("expected to find the combined node at cursor 0, got %+v ok=%v", node, ok)
	}

	var past int
	node, ok = result.FindNodeAt(1, &past)
	if !ok || node.Value() != "高興" {
		t.Fatalf("expected cursor 1 to still be within the combined node, got %+v ok=%v", node, ok)
	}
	if past != 2 {
		t.Fatalf("expected cursor-past-node 2, got %d", past)
	}
}
