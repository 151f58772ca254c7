package bopomofo

// characterToComponent and componentToCharacter together encode the fixed
// correspondence between Bopomofo Unicode glyphs and syllable field
// components (ported from BopomofoCharacterMap in Mandarin.cpp).
var characterToComponent = map[string]Component{
	"ㄅ": B, "ㄆ": P, "ㄇ": M, "ㄈ": F, "ㄉ": D, "ㄊ": T, "ㄋ": N, "ㄌ": L,
	"ㄎ": K, "ㄍ": G, "ㄏ": H, "ㄐ": J, "ㄑ": Q, "ㄒ": X,
	"ㄓ": ZH, "ㄔ": CH, "ㄕ": SH, "ㄖ": R, "ㄗ": Z, "ㄘ": C, "ㄙ": S,
	"ㄧ": I, "ㄨ": U, "ㄩ": UE,
	"ㄚ": A, "ㄛ": O, "ㄜ": ER, "ㄝ": E, "ㄞ": AI, "ㄟ": EI, "ㄠ": AO, "ㄡ": OU,
	"ㄢ": AN, "ㄣ": EN, "ㄤ": ANG, "ㄥ": ENG, "ㄦ": ERR,
	"ˊ": Tone2, "ˇ": Tone3, "ˋ": Tone4, "˙": Tone5,
}

var componentToCharacter = func() map[Component]string {
	m := make(map[Component]string, len(characterToComponent))
	for ch, c := range characterToComponent {
		m[c] = ch
	}
	return m
}()

// ComposedString renders s as its Bopomofo Unicode glyph sequence, e.g.
// "ㄇㄧㄥˊ" for the syllable ming2.
func (s Syllable) ComposedString() string {
	var out string
	for _, mask := range fieldMasks {
		if f := s.field(mask); f != 0 {
			out += componentToCharacter[f]
		}
	}
	return out
}

// FromComposedString parses a Bopomofo glyph sequence such as "ㄇㄧㄥˊ"
// back into a Syllable. Parsing stops at the first character it can't
// recognize as a Bopomofo glyph or a tone mark, returning whatever prefix
// was successfully consumed.
func FromComposedString(str string) Syllable {
	var syllable Syllable
	runes := []rune(str)
	for _, r := range runes {
		c, ok := characterToComponent[string(r)]
		if !ok {
			break
		}
		syllable = syllable.Add(FromComponent(c))
	}
	return syllable
}
