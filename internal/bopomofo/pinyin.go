package bopomofo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var pinyinLower = cases.Lower(language.Und)

// consumePrefix trims prefix from the front of *target and reports whether
// it was present.
func consumePrefix(target *string, prefix string) bool {
	if strings.HasPrefix(*target, prefix) {
		*target = (*target)[len(prefix):]
		return true
	}
	return false
}

// FromHanyuPinyin parses an ASCII, "v"-tolerant, Taiwan-style Hanyu Pinyin
// token (e.g. "zhong1", "lv4", "fong1") into a Syllable. Input case is
// folded with golang.org/x/text/cases rather than a hand-rolled ASCII
// lowercaser, since a real shell may forward pasted or IME-composed text
// that isn't guaranteed to be pure 7-bit ASCII (ported from
// BPMF::FromHanyuPinyin in Mandarin.cpp).
func FromHanyuPinyin(str string) Syllable {
	if str == "" {
		return 0
	}

	pinyin := pinyinLower.String(str)

	var first, second, third, tone Component

	// The y exceptions first.
	switch {
	case consumePrefix(&pinyin, "yuan"):
		second, third = UE, AN
	case consumePrefix(&pinyin, "ying"):
		second, third = I, ENG
	case consumePrefix(&pinyin, "yung"):
		second, third = UE, ENG
	case consumePrefix(&pinyin, "yong"):
		second, third = UE, ENG
	case consumePrefix(&pinyin, "yue"):
		second, third = UE, E
	case consumePrefix(&pinyin, "yun"):
		second, third = UE, EN
	case consumePrefix(&pinyin, "you"):
		second, third = I, OU
	case consumePrefix(&pinyin, "yu"):
		second = UE
	}

	independentConsonant := false

	if len(pinyin) > 0 {
		switch pinyin[0] {
		case 'b':
			first = B
			pinyin = pinyin[1:]
		case 'p':
			first = P
			pinyin = pinyin[1:]
		case 'm':
			first = M
			pinyin = pinyin[1:]
		case 'f':
			first = F
			pinyin = pinyin[1:]
		case 'd':
			first = D
			pinyin = pinyin[1:]
		case 't':
			first = T
			pinyin = pinyin[1:]
		case 'n':
			first = N
			pinyin = pinyin[1:]
		case 'l':
			first = L
			pinyin = pinyin[1:]
		case 'g':
			first = G
			pinyin = pinyin[1:]
		case 'k':
			first = K
			pinyin = pinyin[1:]
		case 'h':
			first = H
			pinyin = pinyin[1:]
		case 'j':
			first = J
			pinyin = pinyin[1:]
		case 'q':
			first = Q
			pinyin = pinyin[1:]
		case 'x':
			first = X
			pinyin = pinyin[1:]
		case 'w':
			second = U
			pinyin = pinyin[1:]
		case 'y':
			if second == 0 && third == 0 {
				second = I
			}
			pinyin = pinyin[1:]
		}
	}

	switch {
	case consumePrefix(&pinyin, "zh"):
		first, independentConsonant = ZH, true
	case consumePrefix(&pinyin, "ch"):
		first, independentConsonant = CH, true
	case consumePrefix(&pinyin, "sh"):
		first, independentConsonant = SH, true
	case consumePrefix(&pinyin, "r"):
		first, independentConsonant = R, true
	case consumePrefix(&pinyin, "z"):
		first, independentConsonant = Z, true
	case consumePrefix(&pinyin, "c"):
		first, independentConsonant = C, true
	case consumePrefix(&pinyin, "s"):
		first, independentConsonant = S, true
	}

	switch {
	case consumePrefix(&pinyin, "veng"):
		second, third = UE, ENG
	case consumePrefix(&pinyin, "iong"):
		second, third = UE, ENG
	case consumePrefix(&pinyin, "ing"):
		second, third = I, ENG
	case consumePrefix(&pinyin, "ien"):
		second, third = I, EN
	case consumePrefix(&pinyin, "iou"):
		second, third = I, OU
	case consumePrefix(&pinyin, "uen"):
		second, third = U, EN
	case consumePrefix(&pinyin, "ven"):
		second, third = UE, EN
	case consumePrefix(&pinyin, "uei"):
		second, third = U, EI
	case consumePrefix(&pinyin, "ung"):
		if first == F {
			third = ENG
		} else {
			second, third = U, ENG
		}
	case consumePrefix(&pinyin, "ong"):
		if first == F {
			third = ENG
		} else {
			second, third = U, ENG
		}
	case consumePrefix(&pinyin, "un"):
		if first == J || first == Q || first == X {
			second = UE
		} else {
			second = U
		}
		third = EN
	case consumePrefix(&pinyin, "iu"):
		second, third = I, OU
	case consumePrefix(&pinyin, "in"):
		second, third = I, EN
	case consumePrefix(&pinyin, "vn"):
		second, third = UE, EN
	case consumePrefix(&pinyin, "ui"):
		second, third = U, EI
	case consumePrefix(&pinyin, "ue"):
		second, third = UE, E
	case consumePrefix(&pinyin, "ü"):
		second = UE
	}

	switch {
	case consumePrefix(&pinyin, "i"):
		if !independentConsonant {
			second = I
		}
	case consumePrefix(&pinyin, "u"):
		if first == J || first == Q || first == X {
			second = UE
		} else {
			second = U
		}
	case consumePrefix(&pinyin, "v"):
		second = UE
	}

	switch {
	case consumePrefix(&pinyin, "ang"):
		third = ANG
	case consumePrefix(&pinyin, "eng"):
		third = ENG
	case consumePrefix(&pinyin, "err"):
		third = ERR
	case consumePrefix(&pinyin, "ai"):
		third = AI
	case consumePrefix(&pinyin, "ei"):
		third = EI
	case consumePrefix(&pinyin, "ao"):
		third = AO
	case consumePrefix(&pinyin, "ou"):
		third = OU
	case consumePrefix(&pinyin, "an"):
		third = AN
	case consumePrefix(&pinyin, "en"):
		third = EN
	case consumePrefix(&pinyin, "er"):
		third = ERR
	case consumePrefix(&pinyin, "a"):
		third = A
	case consumePrefix(&pinyin, "o"):
		third = O
	case consumePrefix(&pinyin, "e"):
		if second != 0 {
			third = E
		} else {
			third = ER
		}
	}

	switch {
	case consumePrefix(&pinyin, "1"):
		tone = Tone1
	case consumePrefix(&pinyin, "2"):
		tone = Tone2
	case consumePrefix(&pinyin, "3"):
		tone = Tone3
	case consumePrefix(&pinyin, "4"):
		tone = Tone4
	case consumePrefix(&pinyin, "5"):
		tone = Tone5
	}

	return Syllable(first | second | third | tone)
}

// HanyuPinyinString renders s as Hanyu Pinyin. When includesTone is false
// the tone digit is omitted; when useVForUUmlaut is true, ü is rendered as
// "v" rather than the combining-less "ü" (ported from
// BPMF::HanyuPinyinString).
func (s Syllable) HanyuPinyinString(includesTone, useVForUUmlaut bool) string {
	cc, mvc, vc := s.Consonant(), s.Medial(), s.Vowel()
	hasNoMVCOrVC := mvc == 0 && vc == 0

	var consonant, middle, vowel, tone string

	switch cc {
	case B:
		consonant = "b"
	case P:
		consonant = "p"
	case M:
		consonant = "m"
	case F:
		consonant = "f"
	case D:
		consonant = "d"
	case T:
		consonant = "t"
	case N:
		consonant = "n"
	case L:
		consonant = "l"
	case G:
		consonant = "g"
	case K:
		consonant = "k"
	case H:
		consonant = "h"
	case J:
		consonant = "j"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case Q:
		consonant = "q"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case X:
		consonant = "x"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case ZH:
		consonant = "zh"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case CH:
		consonant = "ch"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case SH:
		consonant = "sh"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case R:
		consonant = "r"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case Z:
		consonant = "z"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case C:
		consonant = "c"
		if hasNoMVCOrVC {
			middle = "i"
		}
	case S:
		consonant = "s"
		if hasNoMVCOrVC {
			middle = "i"
		}
	}

	switch mvc {
	case I:
		if cc == 0 {
			consonant = "y"
		}
		if vc == 0 || cc != 0 {
			middle = "i"
		} else {
			middle = ""
		}
	case U:
		if cc == 0 {
			consonant = "w"
		}
		if vc == 0 || cc != 0 {
			middle = "u"
		} else {
			middle = ""
		}
	case UE:
		if cc == 0 {
			consonant = "y"
		}
		if (cc == N || cc == L) && vc != E {
			if useVForUUmlaut {
				middle = "v"
			} else {
				middle = "ü"
			}
		} else {
			middle = "u"
		}
	}

	switch vc {
	case A:
		vowel = "a"
	case O:
		vowel = "o"
	case ER:
		vowel = "e"
	case E:
		vowel = "e"
	case AI:
		vowel = "ai"
	case EI:
		vowel = "ei"
	case AO:
		vowel = "ao"
	case OU:
		vowel = "ou"
	case AN:
		vowel = "an"
	case EN:
		vowel = "en"
	case ANG:
		vowel = "ang"
	case ENG:
		vowel = "eng"
	case ERR:
		vowel = "er"
	}

	if (mvc == U || mvc == UE) && vc == ENG {
		middle = ""
		switch {
		case cc == J || cc == Q || cc == X:
			vowel = "iong"
		case cc == 0 && mvc == U:
			vowel = "eng"
		default:
			vowel = "ong"
		}
	}

	if mvc != 0 && vc == EN {
		if cc != 0 {
			vowel = "n"
		} else {
			switch mvc {
			case UE:
				vowel = "n"
			case U:
				vowel = "en"
			default:
				vowel = "in"
			}
		}
	}

	if cc != 0 && mvc == I && vc == OU {
		middle = ""
		vowel = "iu"
	}

	if mvc == I && vc == ENG {
		middle = ""
		vowel = "ing"
	}

	if cc != 0 && mvc == U && vc == EI {
		middle = ""
		vowel = "ui"
	}

	if includesTone {
		switch s.Tone() {
		case Tone2:
			tone = "2"
		case Tone3:
			tone = "3"
		case Tone4:
			tone = "4"
		case Tone5:
			tone = "5"
		}
	}

	return consonant + middle + vowel + tone
}
