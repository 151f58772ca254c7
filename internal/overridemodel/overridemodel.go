// Package overridemodel implements the user override model: an LRU of
// observation contexts, each tracking how often the user has overridden
// the engine's own top choice with something else, so the engine can
// later suggest that same override again (ported from
// UserOverrideModel.h/.cpp).
package overridemodel

import (
	"container/list"
	"math"
	"sort"

	"github.com/mcbopomofo/bopomofo-engine/internal/grid"
	"github.com/mcbopomofo/bopomofo-engine/internal/walker"
	"golang.org/x/exp/maps"
)

// decayThreshold is the point below which a decayed override score is
// treated as zero: full decay after roughly 20 half-lives.
const decayThreshold = 1.0 / 1048576.0

// emptyNodeString stands in for a missing or punctuation neighbor in an
// observation key.
const emptyNodeString = "()"

// maxObservedSpanningLength bounds how long the head node of an
// observation may be; longer phrases have historically been meaningless
// to learn overrides for.
const maxObservedSpanningLength = 3

// Suggestion is what Suggest returns: the candidate value the model
// recommends, and whether the caller should apply it with a forced
// high-score override (rather than a soft, top-unigram-score one).
type Suggestion struct {
	Candidate              string
	ForceHighScoreOverride bool
}

// overrideEntry tracks one candidate value's observation history within a
// single context.
type overrideEntry struct {
	count          int
	timestamp      float64
	forceHighScore bool
}

// observation is everything recorded for one context key: how many times
// the context was seen in total, and per-candidate override counts.
type observation struct {
	count     int
	overrides map[string]*overrideEntry
}

func (o *observation) update(candidate string, timestamp float64, forceHighScore bool) {
	o.count++
	if o.overrides == nil {
		o.overrides = make(map[string]*overrideEntry)
	}
	e, ok := o.overrides[candidate]
	if !ok {
		e = &overrideEntry{}
		o.overrides[candidate] = e
	}
	e.timestamp = timestamp
	e.count++
	e.forceHighScore = forceHighScore
}

// keyObservation is the payload stored in the LRU list; its key is kept
// alongside the value so eviction can remove the matching map entry.
type keyObservation struct {
	key         string
	observation observation
}

// Model is the user override model: an LRU cache (capacity entries) from
// observation context key to the observation history recorded for it.
//
// The zero value is not usable; construct with New. capacity must be > 0.
type Model struct {
	capacity      int
	decayExponent float64
	lruList       *list.List
	lruMap        map[string]*list.Element
}

// New constructs a Model with room for capacity distinct observation
// contexts, whose suggestion scores decay to half their value every
// halfLife timestamp units.
func New(capacity int, halfLife float64) *Model {
	return &Model{
		capacity:      capacity,
		decayExponent: math.Log(0.5) / halfLife,
		lruList:       list.New(),
		lruMap:        make(map[string]*list.Element),
	}
}

// Observe records the user's override, inferred by comparing the walk
// before and after it, at cursor, at timestamp. It is a no-op if either
// walk is empty, if the walks disagree on total reading length, or if the
// overridden node's spanning length exceeds maxObservedSpanningLength.
func (m *Model) Observe(walkBeforeOverride, walkAfterOverride walker.Result, cursor int, timestamp float64) {
	if len(walkBeforeOverride.Nodes) == 0 || len(walkAfterOverride.Nodes) == 0 {
		return
	}
	if walkBeforeOverride.TotalReadings != walkAfterOverride.TotalReadings {
		return
	}

	currentIndex, actualCursor, ok := walkAfterOverride.IndexAt(cursor)
	if !ok {
		return
	}
	currentNode := walkAfterOverride.Nodes[currentIndex]
	if currentNode.SpanningLength() > maxObservedSpanningLength {
		return
	}

	if actualCursor == 0 {
		return
	}
	actualCursor--
	prevIndex, _, ok := walkBeforeOverride.IndexAt(actualCursor)
	if !ok {
		return
	}
	prevHeadNode := walkBeforeOverride.Nodes[prevIndex]

	// Case B: a multi-character phrase won against what used to be
	// single-character choices — record against the "before" walk but
	// force a high-score override, so the phrase reliably outranks the
	// characters it replaced.
	forceHighScore := currentNode.SpanningLength() > prevHeadNode.SpanningLength()
	// Case C: the user broke up a multi-character phrase into a single
	// character — record against the "after" walk instead, and don't
	// force a high score, so the phrase can still win next time.
	breakingUp := currentNode.SpanningLength() == 1 && prevHeadNode.SpanningLength() > 1

	var nodes []*grid.Node
	var headIndex int
	if breakingUp {
		nodes = walkAfterOverride.Nodes
		headIndex = currentIndex
	} else {
		nodes = walkBeforeOverride.Nodes
		headIndex = prevIndex
	}

	key := formObservationKey(nodes, headIndex)
	m.observe(key, currentNode.CurrentUnigram().Value, timestamp, forceHighScore)
}

// Suggest looks up whatever override history exists for the context at
// cursor in currentWalk, as of timestamp, and returns the
// highest-scoring still-relevant candidate. It returns a zero Suggestion
// if there is no context, no history, or every override has fully
// decayed.
func (m *Model) Suggest(currentWalk walker.Result, cursor int, timestamp float64) Suggestion {
	index, _, ok := currentWalk.IndexAt(cursor)
	if !ok {
		return Suggestion{}
	}
	key := formObservationKey(currentWalk.Nodes, index)
	return m.suggest(key, timestamp)
}

func (m *Model) observe(key, candidate string, timestamp float64, forceHighScore bool) {
	if elem, ok := m.lruMap[key]; ok {
		m.lruList.MoveToFront(elem)
		ko := elem.Value.(*keyObservation)
		ko.observation.update(candidate, timestamp, forceHighScore)
		return
	}

	ko := &keyObservation{key: key}
	ko.observation.update(candidate, timestamp, forceHighScore)
	elem := m.lruList.PushFront(ko)
	m.lruMap[key] = elem

	if m.lruList.Len() > m.capacity {
		oldest := m.lruList.Back()
		m.lruList.Remove(oldest)
		delete(m.lruMap, oldest.Value.(*keyObservation).key)
	}
}

func (m *Model) suggest(key string, timestamp float64) Suggestion {
	elem, ok := m.lruMap[key]
	if !ok {
		return Suggestion{}
	}
	obs := &elem.Value.(*keyObservation).observation

	// Iterate candidates in a deterministic (sorted) order so that a tie
	// in decayed score always resolves the same way, matching the
	// original's std::map-ordered iteration.
	candidates := maps.Keys(obs.overrides)
	sort.Strings(candidates)

	var best Suggestion
	var bestScore float64
	for _, candidate := range candidates {
		e := obs.overrides[candidate]
		s := decayedScore(e.count, obs.count, e.timestamp, timestamp, m.decayExponent)
		if s == 0 {
			continue
		}
		if s > bestScore {
			best = Suggestion{Candidate: candidate, ForceHighScoreOverride: e.forceHighScore}
			bestScore = s
		}
	}
	return best
}

// decayedScore balances "recent but infrequently observed" against "old
// but frequently observed": a raw observation-frequency probability,
// attenuated by exponential decay since the observation's timestamp.
func decayedScore(eventCount, totalCount int, eventTimestamp, timestamp, lambda float64) float64 {
	decay := math.Exp((timestamp - eventTimestamp) * lambda)
	if decay < decayThreshold {
		return 0
	}
	prob := float64(eventCount) / float64(totalCount)
	return prob * decay
}

func combineReadingValue(reading, value string) string {
	return "(" + reading + "," + value + ")"
}

// isPunctuation reports whether node's reading marks it as punctuation
// (by convention, readings for punctuation nodes begin with "_").
func isPunctuation(node *grid.Node) bool {
	reading := node.Reading()
	return reading != "" && reading[0] == '_'
}

// formObservationKey builds the ternary "A-B-H" context key for the node
// at headIndex within nodes: H is the head node (keyed on its *top*
// unigram value, since observation always precedes the user's own
// choice), B is the node immediately to its left (or "()" if absent or
// punctuation), and A is two nodes to its left under the same rule; A is
// also "()" whenever B is punctuation.
func formObservationKey(nodes []*grid.Node, headIndex int) string {
	head := nodes[headIndex]
	headStr := combineReadingValue(head.Reading(), head.Unigrams()[0].Value)

	i := headIndex
	prevStr := emptyNodeString
	prevIsPunctuation := false
	if i != 0 {
		i--
		prevIsPunctuation = isPunctuation(nodes[i])
		if !prevIsPunctuation {
			prevStr = combineReadingValue(nodes[i].Reading(), nodes[i].CurrentUnigram().Value)
		}
	}

	anteriorStr := emptyNodeString
	if i != 0 && !prevIsPunctuation {
		i--
		if !isPunctuation(nodes[i]) {
			anteriorStr = combineReadingValue(nodes[i].Reading(), nodes[i].CurrentUnigram().Value)
		}
	}

	return anteriorStr + "-" + prevStr + "-" + headStr
}
