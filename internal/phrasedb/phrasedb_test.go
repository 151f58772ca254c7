package phrasedb

import (
	"testing"
)

func sampleData() []byte {
	// Deliberately sorted by byte order on the full line, including the
	// duplicate-prefix case ("ㄍㄠ " appears twice).
	lines := []string{
		SortedPragmaHeader[:len(SortedPragmaHeader)-1],
		"ㄍㄠ 告 -5.0",
		"ㄍㄠ 高 -3.0",
		"ㄍㄠㄎㄜㄐㄧˋ 高科技 -2.0",
		"ㄐㄧㄤˇ 獎 -4.0",
	}
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return []byte(out)
}

func TestFindFirstMatchingLine(t *testing.T) {
	db, err := Open(sampleData(), true)
	if err != nil {
		t.Fatal(err)
	}

	idx := db.FindFirstMatchingLine("ㄍㄠ ")
	if idx < 0 {
		t.Fatal("expected a match")
	}
	rows := db.FindRows("ㄍㄠ ")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if string(rows[0]) != "ㄍㄠ 告 -5.0" {
		t.Errorf("first row = %q, want the byte-first duplicate", rows[0])
	}
}

func TestFindRowsNoMatch(t *testing.T) {
	db, err := Open(sampleData(), true)
	if err != nil {
		t.Fatal(err)
	}
	if rows := db.FindRows("ㄅㄚ "); rows != nil {
		t.Errorf("got %v, want nil", rows)
	}
}

func TestReverseFindRows(t *testing.T) {
	db, err := Open(sampleData(), true)
	if err != nil {
		t.Fatal(err)
	}
	results := db.ReverseFindRows("高")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %v", len(results), results)
	}
}

func TestOpenRejectsMissingPragma(t *testing.T) {
	if _, err := Open([]byte("ㄍㄠ 高 -3.0\n"), true); err != ErrMalformedPragma {
		t.Errorf("got %v, want ErrMalformedPragma", err)
	}
}

func TestOpenRejectsEmpty(t *testing.T) {
	if _, err := Open(nil, false); err != ErrEmptyBuffer {
		t.Errorf("got %v, want ErrEmptyBuffer", err)
	}
}
