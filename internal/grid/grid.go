package grid

import (
	"sort"

	"github.com/mcbopomofo/bopomofo-engine/internal/languagemodel"
)

// DefaultSeparator joins the readings of a multi-syllable node's combined
// reading, e.g. "ㄍㄠ-ㄒㄧㄥ".
const DefaultSeparator = "-"

// Grid accumulates a sequence of readings and the nodes the language model
// offers for every span of 1..MaxSpanLength consecutive readings, ready for
// a walker to find the maximum-weight path through.
//
// The zero value is not usable; construct with New.
type Grid struct {
	lm        *languagemodel.ScoreRankedLanguageModel
	cursor    int
	separator string
	readings  []string
	spans     []Span
	arena     []*Node
}

// New constructs an empty Grid backed by lm.
func New(lm languagemodel.LanguageModel) *Grid {
	return &Grid{
		lm:        &languagemodel.ScoreRankedLanguageModel{Inner: lm},
		separator: DefaultSeparator,
	}
}

// Clear resets the grid to empty, discarding every reading and node.
func (g *Grid) Clear() {
	g.cursor = 0
	g.readings = nil
	g.spans = nil
	g.arena = nil
}

// Length returns the number of readings currently in the grid.
func (g *Grid) Length() int { return len(g.readings) }

// Cursor returns the current cursor position, in readings (0..Length()).
func (g *Grid) Cursor() int { return g.cursor }

// SetCursor moves the cursor. It panics if cursor is out of range, mirroring
// the original's assert.
func (g *Grid) SetCursor(cursor int) {
	if cursor < 0 || cursor > len(g.readings) {
		panic("grid: cursor out of range")
	}
	g.cursor = cursor
}

// ReadingSeparator returns the separator used to join multi-syllable
// combined readings.
func (g *Grid) ReadingSeparator() string { return g.separator }

// SetReadingSeparator changes the separator used to join multi-syllable
// combined readings going forward.
func (g *Grid) SetReadingSeparator(separator string) { g.separator = separator }

// Readings returns the grid's current reading sequence.
func (g *Grid) Readings() []string { return g.readings }

// InsertReading inserts reading at the cursor and recomputes affected
// spans. It returns false, leaving the grid unchanged, if reading is empty,
// equal to the separator, or has no unigrams in the language model.
func (g *Grid) InsertReading(reading string) bool {
	if reading == "" || reading == g.separator {
		return false
	}
	if !g.lm.HasUnigrams(reading) {
		return false
	}

	g.readings = append(g.readings, "")
	copy(g.readings[g.cursor+1:], g.readings[g.cursor:])
	g.readings[g.cursor] = reading

	g.expandGridAt(g.cursor)
	g.update()
	g.cursor++
	return true
}

// DeleteReadingBeforeCursor deletes the reading just before the cursor
// (Backspace semantics) and moves the cursor back by one.
func (g *Grid) DeleteReadingBeforeCursor() bool {
	if g.cursor == 0 {
		return false
	}
	g.readings = append(g.readings[:g.cursor-1], g.readings[g.cursor:]...)
	g.cursor--
	g.shrinkGridAt(g.cursor)
	g.update()
	return true
}

// DeleteReadingAfterCursor deletes the reading just after the cursor
// (Delete-key semantics); the cursor does not move.
func (g *Grid) DeleteReadingAfterCursor() bool {
	if g.cursor == len(g.readings) {
		return false
	}
	g.readings = append(g.readings[:g.cursor], g.readings[g.cursor+1:]...)
	g.shrinkGridAt(g.cursor)
	g.update()
	return true
}

// Candidate is one (reading, value) pair offered at a grid location.
type Candidate struct {
	Reading string
	Value   string
}

// CandidatesAt returns every candidate value available at loc, nodes
// ordered by descending spanning length (so multi-character phrases are
// offered ahead of single characters), and within a node, by the
// language model's own unigram order. If loc is at the very end of the
// grid, the span ending just before it is used instead, so callers don't
// need to special-case the boundary.
func (g *Grid) CandidatesAt(loc int) []Candidate {
	var result []Candidate
	if len(g.readings) == 0 || loc > len(g.readings) {
		return result
	}

	at := loc
	if at == len(g.readings) {
		at = loc - 1
	}
	nodes := g.overlappingNodesAt(at)

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Node.SpanningLength() > nodes[j].Node.SpanningLength()
	})

	for _, nis := range nodes {
		for _, u := range nis.Node.Unigrams() {
			result = append(result, Candidate{Reading: nis.Node.Reading(), Value: u.Value})
		}
	}
	return result
}

// OverrideCandidate applies overrideType to the node at loc whose value
// matches candidate.Value and, if candidate.Reading is non-empty, whose
// reading also matches. It reports false if no matching node/value pair
// was found.
func (g *Grid) OverrideCandidate(loc int, candidate Candidate, overrideType OverrideType) bool {
	var reading *string
	if candidate.Reading != "" {
		reading = &candidate.Reading
	}
	return g.overrideCandidateImpl(loc, reading, candidate.Value, overrideType)
}

// OverrideCandidateValue is like OverrideCandidate but matches purely on
// value, without caring which node's reading produced it. If multiple
// nodes of different spanning length offer the same value, which one gets
// overridden is unspecified.
func (g *Grid) OverrideCandidateValue(loc int, value string, overrideType OverrideType) bool {
	return g.overrideCandidateImpl(loc, nil, value, overrideType)
}

func (g *Grid) overrideCandidateImpl(loc int, reading *string, value string, overrideType OverrideType) bool {
	if loc > len(g.readings) {
		return false
	}
	at := loc
	if at == len(g.readings) {
		at = loc - 1
	}
	overlapping := g.overlappingNodesAt(at)

	var overridden *nodeInSpan
	for i := range overlapping {
		nis := &overlapping[i]
		if reading != nil && nis.Node.Reading() != *reading {
			continue
		}
		if nis.Node.SelectOverrideUnigram(value, overrideType) {
			overridden = nis
			break
		}
	}
	if overridden == nil {
		return false
	}

	end := overridden.SpanIndex + overridden.Node.SpanningLength()
	if end > len(g.spans) {
		end = len(g.spans)
	}
	for i := overridden.SpanIndex; i < end; i++ {
		for _, nis := range g.overlappingNodesAt(i) {
			if nis.Node != overridden.Node {
				nis.Node.Reset()
			}
		}
	}
	return true
}

// nodeInSpan pairs a node with the span index (grid position) it starts
// at, needed because a single arena Node doesn't know its own location.
type nodeInSpan struct {
	Node      *Node
	SpanIndex int
}

// overlappingNodesAt returns every node that overlaps position loc: every
// node of the span located exactly at loc, plus every longer-spanning node
// from earlier spans that still reaches loc.
func (g *Grid) overlappingNodesAt(loc int) []nodeInSpan {
	var results []nodeInSpan
	if len(g.spans) == 0 || loc >= len(g.spans) {
		return results
	}

	span := &g.spans[loc]
	for length := 1; length <= span.MaxLength(); length++ {
		if idx := span.NodeIndexOf(length); idx != emptySlot {
			results = append(results, nodeInSpan{Node: g.arena[idx], SpanIndex: loc})
		}
	}

	begin := 0
	if loc > MaxSpanLength-1 {
		begin = loc - (MaxSpanLength - 1)
	}
	for i := begin; i < loc; i++ {
		beginLen := loc - i + 1
		endLen := g.spans[i].MaxLength()
		for length := beginLen; length <= endLen; length++ {
			if idx := g.spans[i].NodeIndexOf(length); idx != emptySlot {
				results = append(results, nodeInSpan{Node: g.arena[idx], SpanIndex: i})
			}
		}
	}
	return results
}

// expandGridAt inserts an empty span at loc, pushing every later span one
// position to the right, then drops the nodes that the insertion broke.
func (g *Grid) expandGridAt(loc int) {
	g.spans = append(g.spans, Span{})
	copy(g.spans[loc+1:], g.spans[loc:])
	g.spans[loc] = newSpan()
	if loc != 0 && loc != len(g.spans)-1 {
		g.removeAffectedNodes(loc)
	}
}

// shrinkGridAt removes the span at loc, pulling every later span one
// position to the left, then drops the nodes the removal broke.
func (g *Grid) shrinkGridAt(loc int) {
	if loc == len(g.spans) {
		return
	}
	g.spans = append(g.spans[:loc], g.spans[loc+1:]...)
	g.removeAffectedNodes(loc)
}

// removeAffectedNodes drops every node, in the MaxSpanLength-1 spans
// before loc, whose span now reaches past the seam introduced or closed at
// loc (see the diagrams in reading_grid.cpp for why only that window needs
// revisiting).
func (g *Grid) removeAffectedNodes(loc int) {
	if len(g.spans) == 0 || loc == 0 {
		return
	}
	affected := MaxSpanLength - 1
	begin := 0
	if loc > affected {
		begin = loc - affected
	}
	end := 0
	if loc >= 1 {
		end = loc - 1
	}
	for i := begin; i <= end; i++ {
		g.spans[i].RemoveNodesOfOrLongerThan(loc - i + 1)
	}
}

// insertNode records node in the grid's arena and places its index into
// the span at loc.
func (g *Grid) insertNode(loc int, node *Node) {
	g.arena = append(g.arena, node)
	idx := len(g.arena) - 1
	g.spans[loc].Add(idx, node.SpanningLength())
}

// combineReading joins readings[begin:end] with the grid's separator.
func (g *Grid) combineReading(begin, end int) string {
	result := ""
	for i := begin; i < end; i++ {
		result += g.readings[i]
		if i != end-1 {
			result += g.separator
		}
	}
	return result
}

// hasNodeAt reports whether the span at loc already has a node of
// readingLen spanning length whose reading matches reading, so update()
// can skip re-querying the language model for unchanged spans.
func (g *Grid) hasNodeAt(loc, readingLen int, reading string) bool {
	if loc >= len(g.spans) {
		return false
	}
	idx := g.spans[loc].NodeIndexOf(readingLen)
	if idx == emptySlot {
		return false
	}
	return g.arena[idx].Reading() == reading
}

// update re-derives every node within MaxSpanLength positions of the
// cursor whose combined reading isn't already represented, querying the
// language model for each (position, length) pair that has no such node.
func (g *Grid) update() {
	begin := 0
	if g.cursor > MaxSpanLength {
		begin = g.cursor - MaxSpanLength
	}
	end := g.cursor + MaxSpanLength
	if end > len(g.readings) {
		end = len(g.readings)
	}

	for pos := begin; pos < end; pos++ {
		for length := 1; length <= MaxSpanLength && pos+length <= end; length++ {
			combined := g.combineReading(pos, pos+length)
			if g.hasNodeAt(pos, length, combined) {
				continue
			}
			unigrams := g.lm.GetUnigrams(combined)
			if len(unigrams) == 0 {
				continue
			}
			g.insertNode(pos, newNode(combined, length, unigrams))
		}
	}
}

// SpanCount returns the number of spans currently in the grid — normally
// equal to Length(), one span per reading position.
func (g *Grid) SpanCount() int { return len(g.spans) }

// NodesAt returns every node present at span position loc, longest-first.
func (g *Grid) NodesAt(loc int) []*Node {
	if loc < 0 || loc >= len(g.spans) {
		return nil
	}
	var result []*Node
	span := &g.spans[loc]
	for length := span.MaxLength(); length >= 1; length-- {
		if idx := span.NodeIndexOf(length); idx != emptySlot {
			result = append(result, g.arena[idx])
		}
	}
	return result
}
