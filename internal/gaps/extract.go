package gaps

import (
	"strings"

	"github.com/yungbote/storygap-backend/internal/grammar"
)

// Span is a half-open byte range [Start, End) of the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// GapCandidate is a span of the source that is a validated instance of Tense.
//
// Start/End cover every consumed token including an interposed filler adverb.
// Segments are the spans of the answer words only, and SurfaceAnswer is their
// lowered text joined by single spaces; without a filler it equals the lowered
// source[Start:End].
type GapCandidate struct {
	Start         int           `json:"start"`
	End           int           `json:"end"`
	Tense         grammar.Tense `json:"tense"`
	BaseVerb      string        `json:"base_verb"`
	SurfaceAnswer string        `json:"surface_answer"`
	Filler        string        `json:"filler,omitempty"`
	Segments      []Span        `json:"segments"`
}

func (c GapCandidate) Overlaps(o GapCandidate) bool {
	return c.Start < o.End && o.Start < c.End
}

// Fillers is the closed list of adverbs tolerated between the first auxiliary
// and the rest of a tense ("had always enjoyed").
var Fillers = []string{
	"always", "already", "just", "never", "often", "usually",
	"sometimes", "still", "really", "probably", "quickly", "slowly",
}

// subjects license single-word tenses (present simple, past simple); without
// an auxiliary a bare word is only accepted right after one of these.
var subjects = map[string]bool{
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true, "they": true,
}

// Extractor finds tense instances in text. It is immutable and safe for
// concurrent use.
type Extractor struct {
	validator *grammar.Validator
	fillers   map[string]bool
}

func NewExtractor(v *grammar.Validator) *Extractor {
	f := make(map[string]bool, len(Fillers))
	for _, w := range Fillers {
		f[w] = true
	}
	return &Extractor{validator: v, fillers: f}
}

func (e *Extractor) Validator() *grammar.Validator { return e.validator }

// Extract tokenizes text and returns every validated candidate of the given
// tenses. Within a tense, matched tokens are consumed so candidates of the
// same tense never overlap. A match is dropped when a longer valid match of
// any tense (required or not) covers its tokens, so the "was" of "was running"
// is never a past-simple candidate and the "have finished" of "will have
// finished" is never a present-perfect one.
func (e *Extractor) Extract(text string, tenses []grammar.Tense) []GapCandidate {
	return e.ExtractTokens(text, Tokenize(text), tenses)
}

func (e *Extractor) ExtractTokens(text string, toks []Token, tenses []grammar.Tense) []GapCandidate {
	if len(toks) == 0 || len(tenses) == 0 {
		return nil
	}
	// reach[i] is the furthest final token of any match starting at i.
	reach := make([]int, len(toks))
	for i := range reach {
		reach[i] = -1
	}
	matches := make(map[grammar.Tense][]*match, len(grammar.AllTenses))
	for _, t := range grammar.AllTenses {
		row := make([]*match, len(toks))
		for i := range toks {
			if m := e.matchAt(text, toks, i, t); m != nil {
				row[i] = m
				if m.last > reach[i] {
					reach[i] = m.last
				}
			}
		}
		matches[t] = row
	}
	// reachBefore[i] is the furthest final token of any match starting before i.
	reachBefore := make([]int, len(toks))
	furthest := -1
	for i := range toks {
		reachBefore[i] = furthest
		if reach[i] > furthest {
			furthest = reach[i]
		}
	}
	covered := func(i int, m *match) bool {
		return reach[i] > m.last || reachBefore[i] >= m.last
	}

	var out []GapCandidate
	for _, t := range tenses {
		row, ok := matches[t]
		if !ok {
			continue
		}
		for i := 0; i < len(toks); {
			m := row[i]
			if m == nil || covered(i, m) {
				i++
				continue
			}
			out = append(out, m.cand)
			i = m.last + 1
		}
	}
	return out
}

type match struct {
	cand GapCandidate
	last int // index of the final (main verb) token
}

// matchAt tries tense t with its first word at token i.
func (e *Extractor) matchAt(text string, toks []Token, i int, t grammar.Tense) *match {
	p, ok := grammar.PatternFor(t)
	if !ok {
		return nil
	}
	var (
		answer []int
		filler = -1
		k      = i
	)
	if len(p.Auxiliaries) == 0 {
		if !e.licensedBySubject(text, toks, i) {
			return nil
		}
	}
	for a, allowed := range p.Auxiliaries {
		if k >= len(toks) || !contains(allowed, toks[k].Lowered) {
			return nil
		}
		if len(answer) > 0 && !adjacent(text, toks[k-1], toks[k]) {
			return nil
		}
		answer = append(answer, k)
		k++
		if a == 0 && k < len(toks) && e.fillers[toks[k].Lowered] && adjacent(text, toks[k-1], toks[k]) {
			filler = k
			k++
		}
	}
	if k >= len(toks) || (k > i && !adjacent(text, toks[k-1], toks[k])) {
		return nil
	}
	verb := toks[k]
	if !e.verbShaped(verb.Lowered) {
		return nil
	}
	answer = append(answer, k)

	words := make([]string, len(answer))
	segs := make([]Span, len(answer))
	for n, idx := range answer {
		words[n] = toks[idx].Lowered
		segs[n] = Span{Start: toks[idx].Start, End: toks[idx].End}
	}
	surface := strings.Join(words, " ")
	base, ok := e.resolveBase(t, p.Slot, verb.Lowered, surface)
	if !ok {
		return nil
	}
	c := GapCandidate{
		Start:         toks[i].Start,
		End:           verb.End,
		Tense:         t,
		BaseVerb:      base,
		SurfaceAnswer: surface,
		Segments:      segs,
	}
	if filler >= 0 {
		c.Filler = toks[filler].Text
	}
	return &match{cand: c, last: k}
}

// licensedBySubject reports whether token i directly follows a subject
// pronoun, optionally with one filler adverb in between.
func (e *Extractor) licensedBySubject(text string, toks []Token, i int) bool {
	if i == 0 {
		return false
	}
	prev := i - 1
	if e.fillers[toks[prev].Lowered] {
		if prev == 0 || !adjacent(text, toks[prev], toks[i]) {
			return false
		}
		i, prev = prev, prev-1
	}
	return subjects[toks[prev].Lowered] && adjacent(text, toks[prev], toks[i])
}

func (e *Extractor) verbShaped(w string) bool {
	if len(w) < 2 || subjects[w] || e.fillers[w] || e.validator.Overrides().IsNonVerb(w) {
		return false
	}
	return strings.ContainsAny(w, "aeiouy")
}

// resolveBase derives the base verb of the main-verb token: overrides first,
// then the irregular reverse indexes, then inverse morphology. Every
// hypothesis is checked with the validator; among the accepted ones a verb
// known to the lexicon or irregular table wins, otherwise the first.
func (e *Extractor) resolveBase(t grammar.Tense, slot grammar.SlotKind, verb, surface string) (string, bool) {
	v := e.validator
	var hyps []string
	if b, ok := v.Overrides().BaseFor(verb); ok {
		hyps = append(hyps, b)
	}
	switch slot {
	case grammar.SlotPast:
		hyps = append(hyps, v.Irregular().LookupByPastForm(verb)...)
		hyps = append(hyps, grammar.InversePastCandidates(verb)...)
	case grammar.SlotPastParticiple:
		hyps = append(hyps, v.Irregular().LookupByParticipleForm(verb)...)
		hyps = append(hyps, grammar.InversePastCandidates(verb)...)
	case grammar.SlotPresentParticiple:
		hyps = append(hyps, grammar.InverseParticipleCandidates(verb)...)
	case grammar.SlotPresent:
		hyps = append(hyps, verb)
		hyps = append(hyps, grammar.InverseThirdPersonCandidates(verb)...)
	default:
		hyps = append(hyps, verb)
	}

	best, found := "", false
	seen := make(map[string]bool, len(hyps))
	for _, h := range hyps {
		if seen[h] || !plausibleBase(h) || v.Overrides().IsNonVerb(h) {
			continue
		}
		seen[h] = true
		if v.Validate(t, h, surface) != nil {
			continue
		}
		if e.known(h) {
			return h, true
		}
		if !found {
			best, found = h, true
		}
	}
	if !found {
		return "", false
	}
	// Known verbs return above. An unknown bare present-tense word is only
	// trusted when it is visibly inflected; otherwise any noun after "it"
	// would qualify.
	if slot == grammar.SlotPresent && (best == verb || len(best) < 3) {
		return "", false
	}
	return best, true
}

func (e *Extractor) known(base string) bool {
	if _, ok := e.validator.Irregular().LookupByBase(base); ok {
		return true
	}
	return e.validator.Overrides().KnownVerb(base)
}

func plausibleBase(b string) bool {
	return len(b) >= 2 && strings.ContainsAny(b, "aeiouy")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
