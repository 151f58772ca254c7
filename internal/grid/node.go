// Package grid implements the reading grid (lattice) that the walker
// searches for the most likely hidden phrase sequence behind a series of
// Bopomofo readings (ported from gramambular2/reading_grid.h/.cpp).
//
// Unlike the C++ original, which builds a graph of shared_ptr<Node>, this
// package owns every Node in a single arena (*Node values allocated once
// and never moved); spans reference nodes by arena index so that growing
// the arena never invalidates an index held elsewhere, while walk results
// hold the *Node pointers themselves.
package grid

import "github.com/mcbopomofo/bopomofo-engine/internal/languagemodel"

// OverrideType selects how strongly a user override biases the walk
// toward a node's chosen value.
type OverrideType int

const (
	// OverrideNone means the node is not overridden: its score is simply
	// the current unigram's score.
	OverrideNone OverrideType = iota
	// OverrideValueWithHighScore forces the walk to almost always favor
	// this node, regardless of its unigrams' own scores.
	OverrideValueWithHighScore
	// OverrideValueWithScoreFromTopUnigram keeps the node's score at
	// whatever its best-scoring unigram reports, a softer override that
	// lets other nodes still compete.
	OverrideValueWithScoreFromTopUnigram
)

// OverridingScore is the score OverrideValueWithHighScore reports. It is
// deliberately positive rather than zero: that reduces competition from
// "free-floating" phrases that would otherwise have to be weighed against
// the overridden node's individual characters.
const OverridingScore = 42

// Node holds every unigram the language model returned for one reading
// (or combined multi-syllable reading), the length (in readings) the node
// spans, and which unigram is currently selected — either the top one, or
// one chosen by a user override.
type Node struct {
	reading        string
	spanningLength int
	unigrams       []languagemodel.Unigram
	current        int
	overrideType   OverrideType
}

func newNode(reading string, spanningLength int, unigrams []languagemodel.Unigram) *Node {
	return &Node{
		reading:        reading,
		spanningLength: spanningLength,
		unigrams:       unigrams,
	}
}

// NewPlaceholderNode constructs a zero-weight sentinel node with no
// unigrams and a spanning length of zero. It exists for callers outside
// this package that need a real *Node to stand in for a position that
// isn't part of the grid, such as the walker's synthetic root/terminal
// vertices (mirroring the "_ROOT_"/"_TERMINAL_" sentinel nodes in
// reading_grid.cpp).
func NewPlaceholderNode(reading string) *Node {
	return newNode(reading, 0, nil)
}

// Reading returns the node's (possibly combined, separator-joined) reading.
func (n *Node) Reading() string { return n.reading }

// SpanningLength returns how many readings this node spans.
func (n *Node) SpanningLength() int { return n.spanningLength }

// Unigrams returns every unigram candidate for this node, in the order the
// language model returned them.
func (n *Node) Unigrams() []languagemodel.Unigram { return n.unigrams }

// CurrentUnigram returns the currently selected unigram — the top one
// unless a prior SelectOverrideUnigram changed it.
func (n *Node) CurrentUnigram() languagemodel.Unigram {
	if len(n.unigrams) == 0 {
		return languagemodel.Unigram{}
	}
	return n.unigrams[n.current]
}

// Value returns the currently selected unigram's value, or "" if the node
// has no unigrams.
func (n *Node) Value() string {
	if len(n.unigrams) == 0 {
		return ""
	}
	return n.unigrams[n.current].Value
}

// Score returns the weight the walker should use for this node: the
// overriding score, the top unigram's score, or the currently selected
// unigram's own score, depending on the override type in effect.
func (n *Node) Score() float64 {
	if len(n.unigrams) == 0 {
		return 0
	}
	switch n.overrideType {
	case OverrideValueWithHighScore:
		return OverridingScore
	case OverrideValueWithScoreFromTopUnigram:
		return n.unigrams[0].Score
	default:
		return n.unigrams[n.current].Score
	}
}

// IsOverridden reports whether a user override is currently in effect.
func (n *Node) IsOverridden() bool {
	return n.overrideType != OverrideNone
}

// Reset clears any override and returns the node to its top unigram.
func (n *Node) Reset() {
	n.current = 0
	n.overrideType = OverrideNone
}

// SelectOverrideUnigram selects the unigram matching value and applies
// overrideType to it. It reports false, leaving the node unchanged, if no
// unigram has that value.
func (n *Node) SelectOverrideUnigram(value string, overrideType OverrideType) bool {
	for i, u := range n.unigrams {
		if u.Value == value {
			n.current = i
			n.overrideType = overrideType
			return true
		}
	}
	return false
}
