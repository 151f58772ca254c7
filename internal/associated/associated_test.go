package associated

import (
	"testing"

	"github.com/mcbopomofo/bopomofo-engine/internal/byteblock"
	"github.com/mcbopomofo/bopomofo-engine/internal/phrasedb"
)

func TestSplitAndCombineReadings(t *testing.T) {
	readings := []string{"ㄋㄧˇ", "ㄏㄠˇ"}
	combined := CombineReadings(readings)
	if combined != "ㄋㄧˇ-ㄏㄠˇ" {
		t.Fatalf("CombineReadings = %q", combined)
	}
	if got := SplitReadings(combined); len(got) != 2 || got[0] != readings[0] || got[1] != readings[1] {
		t.Fatalf("SplitReadings(%q) = %v", combined, got)
	}
	if got := SplitReadings(""); got != nil {
		t.Fatalf("SplitReadings(\"\") = %v, want nil", got)
	}
}

func TestPhraseCombinedReading(t *testing.T) {
	p := Phrase{Value: "你好", Readings: []string{"ㄋㄧˇ", "ㄏㄠˇ"}}
	if got := p.CombinedReading(); got != "ㄋㄧˇ-ㄏㄠˇ" {
		t.Fatalf("CombinedReading() = %q", got)
	}
}

func TestV1FindPhrases(t *testing.T) {
	blob := []byte("你 你好\n你 你們\n")
	dict, issues := byteblock.Parse(blob, byteblock.KeyThenValue)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	v := V1{dict: dict}
	got := v.FindPhrases("你")
	if len(got) != 2 || got[0] != "你好" || got[1] != "你們" {
		t.Fatalf("FindPhrases(你) = %v", got)
	}

	if got := v.FindPhrases("沒有"); got != nil {
		t.Fatalf("FindPhrases for an unknown key = %v, want nil", got)
	}
}

func newTestV2DB(t *testing.T) *phrasedb.DB {
	t.Helper()
	data := phrasedb.SortedPragmaHeader +
		"你-ㄋㄧˇ-們-ㄇㄣˊ -2.0\n" +
		"你-ㄋㄧˇ-好-ㄏㄠˇ-呀-ㄧㄚ -3.0\n" +
		"你-ㄋㄧˇ-好-ㄏㄠˇ-嗎-ㄇㄚ -1.0\n"
	db, err := phrasedb.Open([]byte(data), true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return db
}

func TestV2FindPhrasesWithReadings(t *testing.T) {
	var v V2
	v.OpenDB(newTestV2DB(t))

	got := v.FindPhrases("你好", []string{"ㄋㄧˇ", "ㄏㄠˇ"})
	if len(got) != 2 {
		t.Fatalf("got %d phrases, want 2: %+v", len(got), got)
	}
	if got[0].Value != "你好嗎" {
		t.Fatalf("got[0].Value = %q, want the higher-scored phrase first", got[0].Value)
	}
	if want := []string{"ㄋㄧˇ", "ㄏㄠˇ", "ㄇㄚ"}; !equalStrings(got[0].Readings, want) {
		t.Fatalf("got[0].Readings = %v, want %v", got[0].Readings, want)
	}
	if got[1].Value != "你好呀" {
		t.Fatalf("got[1].Value = %q, want the lower-scored phrase second", got[1].Value)
	}
}

func TestV2FindPhrasesDegenerateSingleCodepoint(t *testing.T) {
	var v V2
	v.OpenDB(newTestV2DB(t))

	got := v.FindPhrases("你", nil)
	if len(got) != 3 {
		t.Fatalf("got %d phrases, want 3: %+v", len(got), got)
	}
	values := map[string]bool{}
	for _, p := range got {
		values[p.Value] = true
	}
	for _, want := range []string{"你好嗎", "你好呀", "你們"} {
		if !values[want] {
			t.Errorf("expected %q among the results, got %+v", want, got)
		}
	}
}

func TestV2FindPhrasesMismatchedLengthsReturnsNil(t *testing.T) {
	var v V2
	v.OpenDB(newTestV2DB(t))

	got := v.FindPhrases("你好", []string{"ㄋㄧˇ"})
	if got != nil {
		t.Fatalf("expected nil for mismatched value/reading lengths, got %+v", got)
	}
}

func TestV2FindPhrasesNoMatchReturnsNil(t *testing.T) {
	var v V2
	v.OpenDB(newTestV2DB(t))

	got := v.FindPhrases("沒", nil)
	if got != nil {
		t.Fatalf("expected nil for an unmatched prefix, got %+v", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
