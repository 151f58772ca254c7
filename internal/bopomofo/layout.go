package bopomofo

// Layout is an immutable key→component(s) table for one physical Mandarin
// keyboard layout, plus the reverse component→key table derived from it.
// The five fixed layouts and the Pinyin pseudo-layout are process-wide
// singletons, built once and shared by immutable reference (ported from
// BopomofoKeyboardLayout in Mandarin.h/.cpp).
type Layout struct {
	name           string
	keyToComponent map[byte][]Component
	componentToKey map[Component]byte
}

// Name returns the layout's identifier, e.g. "Standard" or "Hsu".
func (l *Layout) Name() string { return l.name }

// KeyToComponents returns the ordered candidate components for key, or nil
// if key is not mapped by this layout.
func (l *Layout) KeyToComponents(key byte) []Component {
	return l.keyToComponent[key]
}

// ComponentToKey returns the key that produces component, or 0 if no key
// on this layout maps to it.
func (l *Layout) ComponentToKey(component Component) byte {
	return l.componentToKey[component]
}

// IsValidKey reports whether key maps to at least one component on this
// layout.
func (l *Layout) IsValidKey(key byte) bool {
	return len(l.keyToComponent[key]) > 0
}

func newLayout(name string, ktc map[byte][]Component) *Layout {
	l := &Layout{name: name, keyToComponent: ktc, componentToKey: make(map[Component]byte)}
	for key, components := range ktc {
		for _, c := range components {
			l.componentToKey[c] = key
		}
	}
	return l
}

// KeySequenceFromSyllable renders syllable as the key sequence that would
// produce it on this layout (consonant, then medial, then vowel, then
// tone — whichever fields are set), used to reconstruct the running key
// buffer when a new key is appended or the last one is erased.
func (l *Layout) KeySequenceFromSyllable(syllable Syllable) string {
	var seq []byte
	for _, mask := range fieldMasks {
		if c := syllable.field(mask); c != 0 {
			if k := l.ComponentToKey(c); k != 0 {
				seq = append(seq, k)
			}
		}
	}
	return string(seq)
}

func sequenceContainsIorUE(seq []byte, l *Layout) bool {
	iKey := l.ComponentToKey(I)
	ueKey := l.ComponentToKey(UE)
	for _, k := range seq {
		if k == iKey || k == ueKey {
			return true
		}
	}
	return false
}

func (l *Layout) endAheadOrAheadHasToneMarkKey(ahead []byte) bool {
	if len(ahead) == 0 {
		return true
	}
	tone1 := l.ComponentToKey(Tone1)
	tone2 := l.ComponentToKey(Tone2)
	tone3 := l.ComponentToKey(Tone3)
	tone4 := l.ComponentToKey(Tone4)
	tone5 := l.ComponentToKey(Tone5)

	k := ahead[0]
	if tone1 != 0 && k == tone1 {
		return true
	}
	return k == tone2 || k == tone3 || k == tone4 || k == tone5
}

// SyllableFromKeySequence re-derives the full syllable from an entire key
// sequence, rather than incrementally accumulating from a prior syllable.
// This is the layout-specific disambiguation protocol: for keys that are
// ambiguous on this layout (map to two or three candidate components),
// each rule below is tried in order, using both the keys already consumed
// and the keys still to come.
func (l *Layout) SyllableFromKeySequence(sequence string) Syllable {
	seq := []byte(sequence)
	var syllable Syllable

	for i := 0; i < len(seq); i++ {
		before := seq[:i]
		ahead := seq[i+1:]
		beforeHasIorUE := sequenceContainsIorUE(before, l)
		aheadHasIorUE := sequenceContainsIorUE(ahead, l)

		components := l.KeyToComponents(seq[i])
		if len(components) == 0 {
			continue
		}
		if len(components) == 1 {
			syllable = syllable.Add(FromComponent(components[0]))
			continue
		}

		head := FromComponent(components[0])
		follow := FromComponent(components[1])
		var ending Syllable
		if len(components) > 2 {
			ending = FromComponent(components[2])
		} else {
			ending = follow
		}

		// Rule 1: the vowel-E rule.
		if head.Vowel() == E && follow.Vowel() != E {
			if beforeHasIorUE {
				syllable = syllable.Add(head)
			} else {
				syllable = syllable.Add(follow)
			}
			continue
		}
		if head.Vowel() != E && follow.Vowel() == E {
			if beforeHasIorUE {
				syllable = syllable.Add(follow)
			} else {
				syllable = syllable.Add(head)
			}
			continue
		}

		// Rule 2: the J/Q/X + I/UE rule. Once the buffer is non-empty, the
		// key adds its third candidate if it has one (Hsu's 'j') and
		// nothing otherwise.
		if head.BelongsToJQXClass() && !follow.BelongsToJQXClass() {
			if !syllable.IsEmpty() {
				if ending != follow {
					syllable = syllable.Add(ending)
				}
			} else if aheadHasIorUE {
				syllable = syllable.Add(head)
			} else {
				syllable = syllable.Add(follow)
			}
			continue
		}
		if !head.BelongsToJQXClass() && follow.BelongsToJQXClass() {
			if !syllable.IsEmpty() {
				if ending != follow {
					syllable = syllable.Add(ending)
				}
			} else if aheadHasIorUE {
				syllable = syllable.Add(follow)
			} else {
				syllable = syllable.Add(head)
			}
			continue
		}

		// Rule 3: single-key buffer.
		if i == 0 && i == len(seq)-1 {
			if head.HasVowel() || follow.HasToneMarker() || head.BelongsToZCSRClass() {
				syllable = syllable.Add(head)
			} else if follow.HasVowel() || ending.HasToneMarker() {
				syllable = syllable.Add(follow)
			} else {
				syllable = syllable.Add(ending)
			}
			continue
		}

		// Rule 4: general mask-comparison rule.
		if syllable.MaskType()&head.MaskType() == 0 && !l.endAheadOrAheadHasToneMarkKey(ahead) {
			syllable = syllable.Add(head)
		} else if l.endAheadOrAheadHasToneMarkKey(ahead) && head.BelongsToZCSRClass() && syllable.IsEmpty() {
			syllable = syllable.Add(head)
		} else if syllable.MaskType() < follow.MaskType() {
			syllable = syllable.Add(follow)
		} else {
			syllable = syllable.Add(ending)
		}
	}

	if l == HsuLayout {
		if syllable.Vowel() == ENG && !syllable.HasConsonant() && !syllable.HasMedial() {
			syllable = syllable.Add(FromComponent(ERR))
		} else if syllable.Consonant() == G && (syllable.Medial() == I || syllable.Medial() == UE) {
			syllable = syllable.Add(FromComponent(J))
		}
	}

	return syllable
}

func assign1(m map[byte][]Component, key byte, c Component) {
	m[key] = []Component{c}
}

func assign2(m map[byte][]Component, key byte, c1, c2 Component) {
	m[key] = []Component{c1, c2}
}

func assign3(m map[byte][]Component, key byte, c1, c2, c3 Component) {
	m[key] = []Component{c1, c2, c3}
}

func newStandardLayout() *Layout {
	m := map[byte][]Component{}
	assign1(m, '1', B)
	assign1(m, 'q', P)
	assign1(m, 'a', M)
	assign1(m, 'z', F)
	assign1(m, '2', D)
	assign1(m, 'w', T)
	assign1(m, 's', N)
	assign1(m, 'x', L)
	assign1(m, 'e', G)
	assign1(m, 'd', K)
	assign1(m, 'c', H)
	assign1(m, 'r', J)
	assign1(m, 'f', Q)
	assign1(m, 'v', X)
	assign1(m, '5', ZH)
	assign1(m, 't', CH)
	assign1(m, 'g', SH)
	assign1(m, 'b', R)
	assign1(m, 'y', Z)
	assign1(m, 'h', C)
	assign1(m, 'n', S)
	assign1(m, 'u', I)
	assign1(m, 'j', U)
	assign1(m, 'm', UE)
	assign1(m, '8', A)
	assign1(m, 'i', O)
	assign1(m, 'k', ER)
	assign1(m, ',', E)
	assign1(m, '9', AI)
	assign1(m, 'o', EI)
	assign1(m, 'l', AO)
	assign1(m, '.', OU)
	assign1(m, '0', AN)
	assign1(m, 'p', EN)
	assign1(m, ';', ANG)
	assign1(m, '/', ENG)
	assign1(m, '-', ERR)
	assign1(m, '3', Tone3)
	assign1(m, '4', Tone4)
	assign1(m, '6', Tone2)
	assign1(m, '7', Tone5)
	return newLayout("Standard", m)
}

func newIBMLayout() *Layout {
	m := map[byte][]Component{}
	assign1(m, '1', B)
	assign1(m, '2', P)
	assign1(m, '3', M)
	assign1(m, '4', F)
	assign1(m, '5', D)
	assign1(m, '6', T)
	assign1(m, '7', N)
	assign1(m, '8', L)
	assign1(m, '9', G)
	assign1(m, '0', K)
	assign1(m, '-', H)
	assign1(m, 'q', J)
	assign1(m, 'w', Q)
	assign1(m, 'e', X)
	assign1(m, 'r', ZH)
	assign1(m, 't', CH)
	assign1(m, 'y', SH)
	assign1(m, 'u', R)
	assign1(m, 'i', Z)
	assign1(m, 'o', C)
	assign1(m, 'p', S)
	assign1(m, 'a', I)
	assign1(m, 's', U)
	assign1(m, 'd', UE)
	assign1(m, 'f', A)
	assign1(m, 'g', O)
	assign1(m, 'h', ER)
	assign1(m, 'j', E)
	assign1(m, 'k', AI)
	assign1(m, 'l', EI)
	assign1(m, ';', AO)
	assign1(m, 'z', OU)
	assign1(m, 'x', AN)
	assign1(m, 'c', EN)
	assign1(m, 'v', ANG)
	assign1(m, 'b', ENG)
	assign1(m, 'n', ERR)
	assign1(m, 'm', Tone2)
	assign1(m, ',', Tone3)
	assign1(m, '.', Tone4)
	assign1(m, '/', Tone5)
	return newLayout("IBM", m)
}

func newETenLayout() *Layout {
	m := map[byte][]Component{}
	assign1(m, 'b', B)
	assign1(m, 'p', P)
	assign1(m, 'm', M)
	assign1(m, 'f', F)
	assign1(m, 'd', D)
	assign1(m, 't', T)
	assign1(m, 'n', N)
	assign1(m, 'l', L)
	assign1(m, 'v', G)
	assign1(m, 'k', K)
	assign1(m, 'h', H)
	assign1(m, 'g', J)
	assign1(m, '7', Q)
	assign1(m, 'c', X)
	assign1(m, ',', ZH)
	assign1(m, '.', CH)
	assign1(m, '/', SH)
	assign1(m, 'j', R)
	assign1(m, ';', Z)
	assign1(m, '\'', C)
	assign1(m, 's', S)
	assign1(m, 'e', I)
	assign1(m, 'x', U)
	assign1(m, 'u', UE)
	assign1(m, 'a', A)
	assign1(m, 'o', O)
	assign1(m, 'r', ER)
	assign1(m, 'w', E)
	assign1(m, 'i', AI)
	assign1(m, 'q', EI)
	assign1(m, 'z', AO)
	assign1(m, 'y', OU)
	assign1(m, '8', AN)
	assign1(m, '9', EN)
	assign1(m, '0', ANG)
	assign1(m, '-', ENG)
	assign1(m, '=', ERR)
	assign1(m, '2', Tone2)
	assign1(m, '3', Tone3)
	assign1(m, '4', Tone4)
	assign1(m, '1', Tone5)
	return newLayout("ETen", m)
}

func newHsuLayout() *Layout {
	m := map[byte][]Component{}
	assign1(m, 'b', B)
	assign1(m, 'p', P)
	assign2(m, 'm', M, AN)
	assign2(m, 'f', F, Tone3)
	assign2(m, 'd', D, Tone2)
	assign1(m, 't', T)
	assign2(m, 'n', N, EN)
	assign3(m, 'l', L, ENG, ERR)
	assign2(m, 'g', G, ER)
	assign2(m, 'k', K, ANG)
	assign2(m, 'h', H, O)
	assign3(m, 'j', J, ZH, Tone4)
	assign2(m, 'v', Q, CH)
	assign2(m, 'c', X, SH)
	assign1(m, 'r', R)
	assign1(m, 'z', Z)
	assign2(m, 'a', C, EI)
	assign2(m, 's', S, Tone5)
	assign2(m, 'e', I, E)
	assign1(m, 'x', U)
	assign1(m, 'u', UE)
	assign1(m, 'y', A)
	assign1(m, 'i', AI)
	assign1(m, 'w', AO)
	assign1(m, 'o', OU)
	return newLayout("Hsu", m)
}

func newETen26Layout() *Layout {
	m := map[byte][]Component{}
	assign1(m, 'b', B)
	assign2(m, 'p', P, OU)
	assign2(m, 'm', M, AN)
	assign2(m, 'f', F, Tone2)
	assign2(m, 'd', D, Tone5)
	assign2(m, 't', T, ANG)
	assign2(m, 'n', N, EN)
	assign2(m, 'l', L, ENG)
	assign2(m, 'v', G, Q)
	assign2(m, 'k', K, Tone4)
	assign2(m, 'h', H, ERR)
	assign2(m, 'g', ZH, J)
	assign2(m, 'c', SH, X)
	assign1(m, 'y', CH)
	assign2(m, 'j', R, Tone3)
	assign2(m, 'q', Z, EI)
	assign2(m, 'w', C, E)
	assign1(m, 's', S)
	assign1(m, 'e', I)
	assign1(m, 'x', U)
	assign1(m, 'u', UE)
	assign1(m, 'a', A)
	assign1(m, 'o', O)
	assign1(m, 'r', ER)
	assign1(m, 'i', AI)
	assign1(m, 'z', AO)
	return newLayout("ETen26", m)
}

func newHanyuPinyinLayout() *Layout {
	return newLayout("HanyuPinyin", map[byte][]Component{})
}

// The five fixed keyboard layouts plus the Pinyin pseudo-layout. They are
// immutable lookup tables, built once at package initialization and shared
// by reference — no caller may construct a second instance.
var (
	StandardLayout    = newStandardLayout()
	IBMLayout         = newIBMLayout()
	ETenLayout        = newETenLayout()
	HsuLayout         = newHsuLayout()
	ETen26Layout      = newETen26Layout()
	HanyuPinyinLayout = newHanyuPinyinLayout()
)
