package gaps

import (
	"sort"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

// Bounds limits the size of a selection.
type Bounds struct {
	MinGaps int `json:"min_gaps"`
	MaxGaps int `json:"max_gaps"`
}

const (
	// autopromoteCap bounds the extra gaps added after the round-robin fill.
	autopromoteCap = 3
	// coverageBudget caps DFS node visits so adversarial inputs fail fast.
	coverageBudget = 200000
)

// mixedPastMinimums apply only when the whole mixed-past trio is required.
var mixedPastMinimums = map[grammar.Tense]int{
	grammar.PastContinuous: 3,
	grammar.PastSimple:     3,
	grammar.PastPerfect:    2,
}

// Select chooses a non-overlapping subset of cands that covers every tense,
// holds between b.MinGaps and b.MaxGaps gaps, and is sorted by Start.
func Select(cands []GapCandidate, tenses []grammar.Tense, b Bounds) ([]GapCandidate, error) {
	const op = "gaps.Select"
	if len(tenses) == 0 {
		return nil, exercise.Errorf(exercise.CodeInvalidRequest, op, "no tenses requested")
	}
	if b.MaxGaps <= 0 || b.MinGaps > b.MaxGaps {
		return nil, exercise.Errorf(exercise.CodeInvalidRequest, op, "invalid bounds [%d, %d]", b.MinGaps, b.MaxGaps)
	}

	s := newSelection(cands, tenses)
	for _, t := range tenses {
		if len(s.groups[t]) == 0 {
			return nil, exercise.Errorf(exercise.CodeEmptyTenseCandidates, op, "no candidates for %s", t.Label())
		}
	}
	if b.MaxGaps < len(tenses) {
		return nil, exercise.Errorf(exercise.CodeCoverageSelectionFailed, op,
			"%d tenses cannot be covered with at most %d gaps", len(tenses), b.MaxGaps)
	}

	chosen, ok := s.cover()
	if !ok {
		return nil, exercise.Errorf(exercise.CodeCoverageSelectionFailed, op,
			"no non-overlapping assignment covers all %d tenses", len(tenses))
	}
	chosen = s.fill(chosen, b.MaxGaps)
	chosen = s.autopromote(chosen, b.MaxGaps)

	if requiresMixedPast(tenses) {
		counts := s.countByTense(chosen)
		for t, need := range mixedPastMinimums {
			if counts[t] < need {
				return nil, exercise.Errorf(exercise.CodePastMixDistributionFailed, op,
					"%s has %d gaps, needs %d", t.Label(), counts[t], need)
			}
		}
	}
	if len(chosen) < b.MinGaps {
		return nil, exercise.Errorf(exercise.CodeTooFewCandidates, op,
			"selected %d gaps, need at least %d", len(chosen), b.MinGaps)
	}

	out := make([]GapCandidate, len(chosen))
	for i, idx := range chosen {
		out[i] = s.cands[idx]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// selection indexes candidates; chosen sets are slices of indexes into cands.
type selection struct {
	cands  []GapCandidate
	tenses []grammar.Tense
	groups map[grammar.Tense][]int
	byPos  []int
}

func newSelection(cands []GapCandidate, tenses []grammar.Tense) *selection {
	s := &selection{
		cands:  cands,
		tenses: tenses,
		groups: make(map[grammar.Tense][]int, len(tenses)),
	}
	required := make(map[grammar.Tense]bool, len(tenses))
	for _, t := range tenses {
		required[t] = true
	}
	for i, c := range cands {
		if required[c.Tense] {
			s.groups[c.Tense] = append(s.groups[c.Tense], i)
			s.byPos = append(s.byPos, i)
		}
	}
	less := func(idx []int) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := cands[idx[i]], cands[idx[j]]
			if a.Start != b.Start {
				return a.Start < b.Start
			}
			return a.End < b.End
		}
	}
	for _, g := range s.groups {
		sort.SliceStable(g, less(g))
	}
	sort.SliceStable(s.byPos, less(s.byPos))
	return s
}

func (s *selection) fits(idx int, chosen []int) bool {
	for _, c := range chosen {
		if c == idx || s.cands[c].Overlaps(s.cands[idx]) {
			return false
		}
	}
	return true
}

// cover assigns one candidate per tense by depth-first search, scarcest tense
// first. Each recursion level receives its own copy-on-append accumulator.
func (s *selection) cover() ([]int, bool) {
	order := append([]grammar.Tense(nil), s.tenses...)
	sort.SliceStable(order, func(i, j int) bool {
		return len(s.groups[order[i]]) < len(s.groups[order[j]])
	})

	budget := coverageBudget
	var dfs func(depth int, chosen []int) ([]int, bool)
	dfs = func(depth int, chosen []int) ([]int, bool) {
		if depth == len(order) {
			return chosen, true
		}
		for _, idx := range s.groups[order[depth]] {
			if budget--; budget < 0 {
				return nil, false
			}
			if !s.fits(idx, chosen) {
				continue
			}
			if res, ok := dfs(depth+1, append(chosen[:len(chosen):len(chosen)], idx)); ok {
				return res, true
			}
		}
		return nil, false
	}
	return dfs(0, make([]int, 0, len(order)))
}

// fill adds candidates round-robin over the requested tenses, earliest offset
// first, until limit is reached or a full round adds nothing.
func (s *selection) fill(chosen []int, limit int) []int {
	for len(chosen) < limit {
		progressed := false
		for _, t := range s.tenses {
			if len(chosen) >= limit {
				break
			}
			for _, idx := range s.groups[t] {
				if s.fits(idx, chosen) {
					chosen = append(chosen, idx)
					progressed = true
					break
				}
			}
		}
		if !progressed {
			break
		}
	}
	return chosen
}

// autopromote appends up to autopromoteCap of the earliest remaining
// candidates regardless of tense.
func (s *selection) autopromote(chosen []int, limit int) []int {
	added := 0
	for _, idx := range s.byPos {
		if added == autopromoteCap || len(chosen) >= limit {
			break
		}
		if s.fits(idx, chosen) {
			chosen = append(chosen, idx)
			added++
		}
	}
	return chosen
}

func (s *selection) countByTense(chosen []int) map[grammar.Tense]int {
	counts := make(map[grammar.Tense]int, len(s.tenses))
	for _, idx := range chosen {
		counts[s.cands[idx].Tense]++
	}
	return counts
}

func requiresMixedPast(tenses []grammar.Tense) bool {
	for _, t := range grammar.MixedPastTrio {
		if !containsTense(tenses, t) {
			return false
		}
	}
	return true
}

func containsTense(list []grammar.Tense, t grammar.Tense) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
