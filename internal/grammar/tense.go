package grammar

import (
	"fmt"
	"strings"
)

// Tense is a closed enumeration of the English tense/aspect combinations the
// engine knows how to recognise.
type Tense string

const (
	PresentSimple            Tense = "present_simple"
	PresentContinuous        Tense = "present_continuous"
	PastSimple               Tense = "past_simple"
	PastContinuous           Tense = "past_continuous"
	PresentPerfect           Tense = "present_perfect"
	PresentPerfectContinuous Tense = "present_perfect_continuous"
	PastPerfect              Tense = "past_perfect"
	PastPerfectContinuous    Tense = "past_perfect_continuous"
	FutureSimple             Tense = "future_simple"
	FutureContinuous         Tense = "future_continuous"
	FuturePerfect            Tense = "future_perfect"
	FuturePerfectContinuous  Tense = "future_perfect_continuous"
)

// AllTenses lists every tense in canonical order.
var AllTenses = []Tense{
	PresentSimple,
	PresentContinuous,
	PastSimple,
	PastContinuous,
	PresentPerfect,
	PresentPerfectContinuous,
	PastPerfect,
	PastPerfectContinuous,
	FutureSimple,
	FutureContinuous,
	FuturePerfect,
	FuturePerfectContinuous,
}

// SlotKind is the morphological form required in the main-verb slot.
type SlotKind int

const (
	// SlotPresent accepts the base or a third-person-singular form.
	SlotPresent SlotKind = iota
	SlotPast
	SlotPastParticiple
	SlotPresentParticiple
	// SlotBase accepts only the bare infinitive.
	SlotBase
)

// Pattern is the structural shape of a tense: a fixed sequence of auxiliary
// slots, each a set of allowed words, followed by one main-verb slot.
type Pattern struct {
	Auxiliaries [][]string
	Slot        SlotKind
}

// Words is the number of whitespace-separated words in a well-formed answer.
func (p Pattern) Words() int { return len(p.Auxiliaries) + 1 }

var patterns = map[Tense]Pattern{
	PresentSimple:            {Slot: SlotPresent},
	PresentContinuous:        {Auxiliaries: [][]string{{"am", "is", "are"}}, Slot: SlotPresentParticiple},
	PastSimple:               {Slot: SlotPast},
	PastContinuous:           {Auxiliaries: [][]string{{"was", "were"}}, Slot: SlotPresentParticiple},
	PresentPerfect:           {Auxiliaries: [][]string{{"have", "has"}}, Slot: SlotPastParticiple},
	PresentPerfectContinuous: {Auxiliaries: [][]string{{"have", "has"}, {"been"}}, Slot: SlotPresentParticiple},
	PastPerfect:              {Auxiliaries: [][]string{{"had"}}, Slot: SlotPastParticiple},
	PastPerfectContinuous:    {Auxiliaries: [][]string{{"had"}, {"been"}}, Slot: SlotPresentParticiple},
	FutureSimple:             {Auxiliaries: [][]string{{"will"}}, Slot: SlotBase},
	FutureContinuous:         {Auxiliaries: [][]string{{"will"}, {"be"}}, Slot: SlotPresentParticiple},
	FuturePerfect:            {Auxiliaries: [][]string{{"will"}, {"have"}}, Slot: SlotPastParticiple},
	FuturePerfectContinuous:  {Auxiliaries: [][]string{{"will"}, {"have"}, {"been"}}, Slot: SlotPresentParticiple},
}

// PatternFor returns the structural pattern of t.
func PatternFor(t Tense) (Pattern, bool) {
	p, ok := patterns[t]
	return p, ok
}

func (t Tense) Valid() bool {
	_, ok := patterns[t]
	return ok
}

func (t Tense) String() string { return string(t) }

// Label is the human-readable name, e.g. "past perfect continuous".
func (t Tense) Label() string { return strings.ReplaceAll(string(t), "_", " ") }

// ParseTense accepts canonical ids as well as hyphenated or spaced spellings.
func ParseTense(raw string) (Tense, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	t := Tense(norm)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tense %q", raw)
	}
	return t, nil
}

// ParseTenses parses a list, rejecting duplicates.
func ParseTenses(raw []string) ([]Tense, error) {
	out := make([]Tense, 0, len(raw))
	seen := make(map[Tense]bool, len(raw))
	for _, r := range raw {
		t, err := ParseTense(r)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			return nil, fmt.Errorf("duplicate tense %q", t)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// MixedPastTrio is the tense set that triggers the mixed-past distribution
// minimums in the selector.
var MixedPastTrio = []Tense{PastContinuous, PastSimple, PastPerfect}
