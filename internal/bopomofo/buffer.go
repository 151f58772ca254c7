package bopomofo

// ReadingBuffer accumulates raw key characters into a single composed
// syllable, either via a keyboard Layout's bitfield accumulator or, in
// Pinyin mode, by re-running FromHanyuPinyin over the raw ASCII sequence
// after every keystroke (ported from BopomofoReadingBuffer in
// Mandarin.h).
type ReadingBuffer struct {
	layout         *Layout
	syllable       Syllable
	pinyinMode     bool
	pinyinSequence string
}

// NewReadingBuffer constructs a buffer bound to layout. Passing
// HanyuPinyinLayout switches the buffer into Pinyin mode.
func NewReadingBuffer(layout *Layout) *ReadingBuffer {
	b := &ReadingBuffer{}
	b.SetKeyboardLayout(layout)
	return b
}

// SetKeyboardLayout rebinds the buffer to layout without clearing any
// already-composed syllable. Selecting the Pinyin layout clears the Pinyin
// ASCII sequence, matching the original's behavior of resetting
// pinyin_sequence_ whenever the Pinyin layout is (re-)selected; switching
// to any other layout leaves the sequence as it is.
func (b *ReadingBuffer) SetKeyboardLayout(layout *Layout) {
	b.layout = layout
	if layout == HanyuPinyinLayout {
		b.pinyinMode = true
		b.pinyinSequence = ""
	} else {
		b.pinyinMode = false
	}
}

// KeyboardLayout returns the buffer's current layout.
func (b *ReadingBuffer) KeyboardLayout() *Layout {
	return b.layout
}

func toLowerASCII(k byte) byte {
	if k >= 'A' && k <= 'Z' {
		return k - 'A' + 'a'
	}
	return k
}

// IsValidKey reports whether k can be accepted by CombineKey given the
// buffer's current state. In Pinyin mode, once a tone digit (2-5) has been
// entered, no further letters are accepted until the buffer is cleared.
func (b *ReadingBuffer) IsValidKey(k byte) bool {
	if !b.pinyinMode {
		if b.layout == nil {
			return false
		}
		return b.layout.IsValidKey(k)
	}

	lk := toLowerASCII(k)
	if lk >= 'a' && lk <= 'z' {
		if len(b.pinyinSequence) > 0 {
			last := b.pinyinSequence[len(b.pinyinSequence)-1]
			if last >= '2' && last <= '5' {
				return false
			}
		}
		return true
	}

	if len(b.pinyinSequence) > 0 && lk >= '2' && lk <= '5' {
		return true
	}

	return false
}

// CombineKey feeds k into the buffer, returning false (and leaving the
// buffer unchanged) if k is not currently valid.
func (b *ReadingBuffer) CombineKey(k byte) bool {
	if !b.IsValidKey(k) {
		return false
	}

	if b.pinyinMode {
		b.pinyinSequence += string(toLowerASCII(k))
		b.syllable = FromHanyuPinyin(b.pinyinSequence)
		return true
	}

	sequence := b.layout.KeySequenceFromSyllable(b.syllable) + string(k)
	b.syllable = b.layout.SyllableFromKeySequence(sequence)
	return true
}

// Clear empties the buffer.
func (b *ReadingBuffer) Clear() {
	b.pinyinSequence = ""
	b.syllable = 0
}

// Backspace drops the last-entered component (in Pinyin mode, the last
// ASCII character), re-deriving the syllable from the shortened sequence.
func (b *ReadingBuffer) Backspace() {
	if b.layout == nil {
		return
	}

	if b.pinyinMode {
		if len(b.pinyinSequence) > 0 {
			b.pinyinSequence = b.pinyinSequence[:len(b.pinyinSequence)-1]
		}
		b.syllable = FromHanyuPinyin(b.pinyinSequence)
		return
	}

	sequence := b.layout.KeySequenceFromSyllable(b.syllable)
	if len(sequence) > 0 {
		sequence = sequence[:len(sequence)-1]
		b.syllable = b.layout.SyllableFromKeySequence(sequence)
	}
}

// IsEmpty reports whether the composed syllable is empty.
func (b *ReadingBuffer) IsEmpty() bool {
	return b.syllable.IsEmpty()
}

// ComposedString renders the buffer's current contents: the raw ASCII
// sequence in Pinyin mode, or the Bopomofo glyph string otherwise.
func (b *ReadingBuffer) ComposedString() string {
	if b.pinyinMode {
		return b.pinyinSequence
	}
	return b.syllable.ComposedString()
}

// Syllable returns the buffer's current composed syllable.
func (b *ReadingBuffer) Syllable() Syllable {
	return b.syllable
}

// StandardLayoutQueryString renders the current syllable as it would be
// typed on the Standard layout, regardless of the buffer's own layout —
// used by callers that want a layout-independent key for candidate lookup.
func (b *ReadingBuffer) StandardLayoutQueryString() string {
	return StandardLayout.KeySequenceFromSyllable(b.syllable)
}

// HasToneMarker reports whether the composed syllable carries a
// non-default tone.
func (b *ReadingBuffer) HasToneMarker() bool {
	return b.syllable.HasToneMarker()
}

// HasToneMarkerOnly reports whether the buffer holds nothing but a tone
// marker (no consonant, medial, or vowel) — the state right after a
// stray tone key on an otherwise-empty buffer.
func (b *ReadingBuffer) HasToneMarkerOnly() bool {
	return b.syllable.HasToneMarker() &&
		!(b.syllable.HasConsonant() || b.syllable.HasMedial() || b.syllable.HasVowel())
}
