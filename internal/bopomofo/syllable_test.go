package bopomofo

import "testing"

func TestAddReplacesOnlyPresentFields(t *testing.T) {
	s := FromComponent(M).Add(FromComponent(ENG))
	if s.Consonant() != M {
		t.Errorf("consonant lost: got %v", s.Consonant())
	}
	if s.Vowel() != ENG {
		t.Errorf("vowel not set: got %v", s.Vowel())
	}

	s2 := s.Add(FromComponent(N))
	if s2.Consonant() != N {
		t.Errorf("consonant not overwritten: got %v", s2.Consonant())
	}
	if s2.Vowel() != ENG {
		t.Errorf("vowel should be untouched: got %v", s2.Vowel())
	}
}

func TestEmptySyllable(t *testing.T) {
	var s Syllable
	if !s.IsEmpty() {
		t.Error("zero value should be empty")
	}
}

func TestComposedStringRoundTrip(t *testing.T) {
	// ㄇㄧㄥˊ (ming2)
	s := FromComponent(M).Add(FromComponent(I)).Add(FromComponent(ENG)).Add(FromComponent(Tone2))
	str := s.ComposedString()
	if str != "ㄇㄧㄥˊ" {
		t.Fatalf("got %q", str)
	}
	if got := FromComposedString(str); got != s {
		t.Errorf("round trip failed: got %v, want %v", got, s)
	}
}

func TestBelongsToJQXClass(t *testing.T) {
	if !FromComponent(J).BelongsToJQXClass() {
		t.Error("J should belong to JQX class")
	}
	if FromComponent(B).BelongsToJQXClass() {
		t.Error("B should not belong to JQX class")
	}
}
