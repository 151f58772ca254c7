package languagemodel

import (
	"testing"

	"github.com/mcbopomofo/bopomofo-engine/internal/phrasedb"
)

func newTestBaseDB(t *testing.T) *phrasedb.DB {
	t.Helper()
	data := phrasedb.SortedPragmaHeader +
		"ㄍㄠ ㄍㄠ -1.0\n" +
		"ㄍㄠ 告 -2.0\n" +
		"ㄍㄠ 高 -3.0\n"
	db, err := phrasedb.Open([]byte(data), true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return db
}

func TestMcBopomofoLMBaseOnly(t *testing.T) {
	var lm McBopomofoLM
	lm.languageModel.OpenDB(newTestBaseDB(t))

	got := lm.GetUnigrams("ㄍㄠ")
	if len(got) != 3 {
		t.Fatalf("got %d unigrams, want 3", len(got))
	}
	if got[0].Value != "ㄍㄠ" || got[0].Score != -1.0 {
		t.Errorf("got[0] = %+v", got[0])
	}
}

func TestMcBopomofoLMUserOverrideOutranksBase(t *testing.T) {
	var lm McBopomofoLM
	lm.languageModel.OpenDB(newTestBaseDB(t))
	lm.LoadUserPhrasesData([]byte("高 ㄍㄠ\n"), nil)

	got := lm.GetUnigrams("ㄍㄠ")
	if len(got) != 3 {
		t.Fatalf("got %d unigrams, want 3", len(got))
	}
	if got[0].Value != "高" {
		t.Errorf("expected user override first, got %+v", got[0])
	}
	if got[0].Score <= -1.0 {
		t.Errorf("expected user override score to exceed base max, got %v", got[0].Score)
	}
}

func TestMcBopomofoLMExcludedPhraseIsRemoved(t *testing.T) {
	var lm McBopomofoLM
	lm.languageModel.OpenDB(newTestBaseDB(t))
	lm.LoadUserPhrasesData(nil, []byte("告 ㄍㄠ\n"))

	got := lm.GetUnigrams("ㄍㄠ")
	for _, u := range got {
		if u.Value == "告" {
			t.Fatalf("excluded value %q still present: %+v", u.Value, got)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d unigrams, want 2", len(got))
	}
}

func TestMcBopomofoLMDedupByValue(t *testing.T) {
	var lm McBopomofoLM
	lm.languageModel.OpenDB(newTestBaseDB(t))
	lm.LoadUserPhrasesData([]byte("高 ㄍㄠ\n"), nil)

	seen := make(map[string]int)
	for _, u := range lm.GetUnigrams("ㄍㄠ") {
		seen[u.Value]++
	}
	for v, n := range seen {
		if n > 1 {
			t.Errorf("value %q appeared %d times", v, n)
		}
	}
}

func TestMcBopomofoLMMacroConversion(t *testing.T) {
	var lm McBopomofoLM
	data := phrasedb.SortedPragmaHeader + "ㄐㄧㄣㄊㄧㄢ MACRO@DATE_TODAY_SHORT -1.0\n"
	db, err := phrasedb.Open([]byte(data), true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	lm.languageModel.OpenDB(db)
	lm.SetMacroConverter(func(v string) string {
		if v == "MACRO@DATE_TODAY_SHORT" {
			return "2026/08/02"
		}
		return v
	})

	got := lm.GetUnigrams("ㄐㄧㄣㄊㄧㄢ")
	if len(got) != 1 || got[0].Value != "2026/08/02" {
		t.Fatalf("got %+v", got)
	}
}

func TestMcBopomofoLMPhraseReplacement(t *testing.T) {
	var lm McBopomofoLM
	data := phrasedb.SortedPragmaHeader + "ㄍㄠ 高 -1.0\n"
	db, err := phrasedb.Open([]byte(data), true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	lm.languageModel.OpenDB(db)
	lm.phraseReplacement.Load([]byte("高 高(替)\n"))
	lm.SetPhraseReplacementEnabled(true)

	got := lm.GetUnigrams("ㄍㄠ")
	if len(got) != 1 || got[0].Value != "高(替)" {
		t.Fatalf("got %+v", got)
	}
}

func TestMcBopomofoLMHasUnigrams(t *testing.T) {
	var lm McBopomofoLM
	lm.languageModel.OpenDB(newTestBaseDB(t))

	if !lm.HasUnigrams("ㄍㄠ") {
		t.Error("expected HasUnigrams true for known reading")
	}
	if lm.HasUnigrams("ㄅㄚ") {
		t.Error("expected HasUnigrams false for unknown reading")
	}
}
