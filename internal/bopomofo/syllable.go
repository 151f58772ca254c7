// Package bopomofo implements the Bopomofo syllable bitfield, the five
// Mandarin keyboard layouts plus Hanyu Pinyin, and the reading buffer that
// accumulates raw keystrokes into composed syllables (ported from
// Source/Engine/Mandarin/Mandarin.h and Mandarin.cpp).
package bopomofo

// Component is a single field value within a Syllable: a consonant, a
// medial, a vowel, or a tone. Components from different fields never share
// bit positions, so they can be OR'd together to assemble a Syllable.
type Component uint16

// Field masks. Each Syllable is packed as consonant | medial | vowel | tone.
const (
	ConsonantMask Component = 0x001f // 21 consonants
	MedialMask    Component = 0x0060 // 3 medials
	VowelMask     Component = 0x0780 // 13 vowels
	ToneMask      Component = 0x3800 // 5 tones, tone1 == 0
)

// Consonant components.
const (
	B  Component = 0x0001
	P  Component = 0x0002
	M  Component = 0x0003
	F  Component = 0x0004
	D  Component = 0x0005
	T  Component = 0x0006
	N  Component = 0x0007
	L  Component = 0x0008
	G  Component = 0x0009
	K  Component = 0x000a
	H  Component = 0x000b
	J  Component = 0x000c
	Q  Component = 0x000d
	X  Component = 0x000e
	ZH Component = 0x000f
	CH Component = 0x0010
	SH Component = 0x0011
	R  Component = 0x0012
	Z  Component = 0x0013
	C  Component = 0x0014
	S  Component = 0x0015
)

// Medial components. UE ("u umlaut", ü) shares the medial field with I/U.
const (
	I  Component = 0x0020
	U  Component = 0x0040
	UE Component = 0x0060
)

// Vowel components.
const (
	A   Component = 0x0080
	O   Component = 0x0100
	ER  Component = 0x0180
	E   Component = 0x0200
	AI  Component = 0x0280
	EI  Component = 0x0300
	AO  Component = 0x0380
	OU  Component = 0x0400
	AN  Component = 0x0480
	EN  Component = 0x0500
	ANG Component = 0x0580
	ENG Component = 0x0600
	ERR Component = 0x0680
)

// Tone components. Tone1 (the neutral first tone) is the zero value: an
// untoned syllable and a tone-1 syllable are bit-for-bit identical.
const (
	Tone1 Component = 0x0000
	Tone2 Component = 0x0800
	Tone3 Component = 0x1000
	Tone4 Component = 0x1800
	Tone5 Component = 0x2000
)

// Syllable is a 16-bit Bopomofo syllable: four disjoint fields packed into
// one value. The zero Syllable is empty.
type Syllable uint16

// FromComponent builds a Syllable consisting of a single component.
func FromComponent(c Component) Syllable {
	return Syllable(c)
}

// Clear resets the syllable to empty.
func (s *Syllable) Clear() {
	*s = 0
}

// IsEmpty reports whether no field is set.
func (s Syllable) IsEmpty() bool {
	return s == 0
}

func (s Syllable) field(mask Component) Component {
	return Component(s) & mask
}

// HasConsonant reports whether the consonant field is set.
func (s Syllable) HasConsonant() bool { return s.field(ConsonantMask) != 0 }

// HasMedial reports whether the medial field is set.
func (s Syllable) HasMedial() bool { return s.field(MedialMask) != 0 }

// HasVowel reports whether the vowel field is set.
func (s Syllable) HasVowel() bool { return s.field(VowelMask) != 0 }

// HasToneMarker reports whether the tone field is non-default (i.e. not
// Tone1, which is indistinguishable from "no tone set").
func (s Syllable) HasToneMarker() bool { return s.field(ToneMask) != 0 }

// Consonant returns the consonant component, or 0 if unset.
func (s Syllable) Consonant() Component { return s.field(ConsonantMask) }

// Medial returns the medial component, or 0 if unset.
func (s Syllable) Medial() Component { return s.field(MedialMask) }

// Vowel returns the vowel component, or 0 if unset.
func (s Syllable) Vowel() Component { return s.field(VowelMask) }

// Tone returns the tone component, or 0 (Tone1) if unset.
func (s Syllable) Tone() Component { return s.field(ToneMask) }

// IsOverlappingWith reports whether s and other share a set field.
func (s Syllable) IsOverlappingWith(other Syllable) bool {
	for _, mask := range fieldMasks {
		if s.field(mask) != 0 && other.field(mask) != 0 {
			return true
		}
	}
	return false
}

var fieldMasks = [...]Component{ConsonantMask, MedialMask, VowelMask, ToneMask}

// BelongsToJQXClass reports whether the consonant is J, Q, or X — the class
// that requires a following I or UE medial.
func (s Syllable) BelongsToJQXClass() bool {
	switch s.Consonant() {
	case J, Q, X:
		return true
	}
	return false
}

// BelongsToZCSRClass reports whether the consonant is one of ZH, CH, SH,
// R, Z, C, S.
func (s Syllable) BelongsToZCSRClass() bool {
	c := s.Consonant()
	return c >= ZH && c <= S
}

// MaskType returns the set of fields that are non-empty, as an OR of the
// field masks. Two syllables' MaskType values can be compared as ordinary
// integers; the ordering is only meaningful as used by the layout
// disambiguation heuristics, which compare it for set inclusion/size, not
// semantic rank.
func (s Syllable) MaskType() Component {
	var mask Component
	for _, m := range fieldMasks {
		if s.field(m) != 0 {
			mask |= m
		}
	}
	return mask
}

// Add returns a new Syllable with every field present in other overwriting
// the corresponding field of s; fields absent from other are left as-is in
// the result. This is the "+=" operator from the original engine.
func (s Syllable) Add(other Syllable) Syllable {
	result := s
	for _, mask := range fieldMasks {
		if other.field(mask) != 0 {
			result = (result &^ Syllable(mask)) | (other & Syllable(mask))
		}
	}
	return result
}
