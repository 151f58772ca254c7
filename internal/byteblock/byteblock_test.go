package byteblock

import "testing"

func TestParseKeyThenValue(t *testing.T) {
	blob := []byte("# comment\n輸入法 ㄕㄨ-ㄖㄨˋ-ㄈㄚˇ\n\n輸入法 ㄕㄨ˙-ㄖㄨˋ-ㄈㄚˇ\n")
	d, issues := Parse(blob, KeyThenValue)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	values := d.Get("輸入法")
	if len(values) != 2 {
		t.Fatalf("got %d values, want 2: %v", len(values), values)
	}
	if values[0] != "ㄕㄨ-ㄖㄨˋ-ㄈㄚˇ" {
		t.Errorf("values[0] = %q", values[0])
	}
}

func TestParseValueThenKey(t *testing.T) {
	blob := []byte("程式 ㄔㄥˊ-ㄕˋ\n")
	d, issues := Parse(blob, ValueThenKey)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	values := d.Get("ㄔㄥˊ-ㄕˋ")
	if len(values) != 1 || values[0] != "程式" {
		t.Errorf("got %v", values)
	}
}

func TestParseMissingSecondColumn(t *testing.T) {
	blob := []byte("onlyonecolumn\n")
	_, issues := Parse(blob, KeyThenValue)
	if len(issues) != 1 || issues[0].Type != MissingSecondColumn || issues[0].Line != 1 {
		t.Fatalf("got %v", issues)
	}
}

func TestParseNullByteAborts(t *testing.T) {
	blob := []byte("a b\n\x00c d\n")
	d, issues := Parse(blob, KeyThenValue)
	if len(issues) != 1 || issues[0].Type != NullCharacterInText {
		t.Fatalf("got %v", issues)
	}
	if d.Has("c") {
		t.Errorf("parsing should have aborted before the NUL byte's line")
	}
}

func TestParseTrailingNULAllowed(t *testing.T) {
	blob := []byte("a b\x00")
	_, issues := Parse(blob, KeyThenValue)
	if len(issues) != 0 {
		t.Fatalf("trailing NUL should be tolerated, got %v", issues)
	}
}

func TestParseIssueCap(t *testing.T) {
	blob := make([]byte, 0)
	for i := 0; i < MaxIssues+10; i++ {
		blob = append(blob, []byte("bad\n")...)
	}
	_, issues := Parse(blob, KeyThenValue)
	if len(issues) != MaxIssues {
		t.Fatalf("got %d issues, want %d", len(issues), MaxIssues)
	}
}

func TestClear(t *testing.T) {
	d, _ := Parse([]byte("a b\n"), KeyThenValue)
	d.Clear()
	if d.Has("a") {
		t.Errorf("Clear should drop all entries")
	}
}
