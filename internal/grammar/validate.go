package grammar

import (
	"strings"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

// Validator is the single authority on whether an answer is a legal instance
// of a tense for a base verb. It is immutable and safe for concurrent use.
type Validator struct {
	irregular *IrregularTable
	overrides *Overrides
}

func NewValidator(irregular *IrregularTable, overrides *Overrides) *Validator {
	return &Validator{irregular: irregular, overrides: overrides}
}

func (v *Validator) Irregular() *IrregularTable { return v.irregular }
func (v *Validator) Overrides() *Overrides       { return v.overrides }

// ParticipleForms returns the accepted -ing spellings of base.
func (v *Validator) ParticipleForms(base string) []string {
	if f, ok := v.overrides.ParticipleFor(base); ok {
		return f
	}
	return PresentParticipleCandidates(base)
}

// PresentForms returns the accepted present-simple answers: the base itself
// plus its third-person-singular spellings.
func (v *Validator) PresentForms(base string) []string {
	b := normalizeWord(base)
	return uniq(append([]string{b}, ThirdPersonSingularCandidates(b)...)...)
}

// PastForms returns the accepted past-simple forms and whether they come from
// the irregular table.
func (v *Validator) PastForms(base string) ([]string, bool) {
	if e, ok := v.irregular.LookupByBase(base); ok {
		return e.PastForms, true
	}
	if f, ok := v.overrides.PastFor(base); ok {
		return f, false
	}
	return RegularPastCandidates(base), false
}

// PastParticipleForms returns the accepted past-participle forms and whether
// they come from the irregular table.
func (v *Validator) PastParticipleForms(base string) ([]string, bool) {
	if e, ok := v.irregular.LookupByBase(base); ok {
		return e.ParticipleForms, true
	}
	if f, ok := v.overrides.PastFor(base); ok {
		return f, false
	}
	return RegularPastCandidates(base), false
}

// SlotForms returns the accepted main-verb spellings for a slot kind.
func (v *Validator) SlotForms(slot SlotKind, base string) (forms []string, irregular bool) {
	switch slot {
	case SlotPresent:
		return v.PresentForms(base), false
	case SlotPast:
		return v.PastForms(base)
	case SlotPastParticiple:
		return v.PastParticipleForms(base)
	case SlotPresentParticiple:
		return v.ParticipleForms(base), false
	default:
		return []string{normalizeWord(base)}, false
	}
}

// Validate checks answer against the auxiliary sequence and main-verb slot of
// tense. It returns nil when the answer is legal, otherwise an *exercise.Error
// coded structure_mismatch, verb_mismatch or irregular_mismatch.
func (v *Validator) Validate(tense Tense, base, answer string) error {
	const op = "grammar.Validate"
	p, ok := PatternFor(tense)
	if !ok {
		return exercise.Errorf(exercise.CodeStructureMismatch, op, "unknown tense %q", tense)
	}
	b := normalizeWord(base)
	if b == "" || strings.ContainsAny(b, " \t\n") {
		return exercise.Errorf(exercise.CodeVerbMismatch, op, "base verb %q is not a single word", base)
	}

	words := strings.Fields(strings.ToLower(answer))
	if len(words) != p.Words() {
		return exercise.Errorf(exercise.CodeStructureMismatch, op,
			"%s needs %d word(s), got %d in %q", tense.Label(), p.Words(), len(words), answer)
	}
	for i, allowed := range p.Auxiliaries {
		if !contains(allowed, words[i]) {
			return exercise.Errorf(exercise.CodeStructureMismatch, op,
				"%s expects %s at position %d, got %q", tense.Label(), strings.Join(allowed, "/"), i+1, words[i])
		}
	}

	verb := words[len(words)-1]
	forms, irregular := v.SlotForms(p.Slot, b)
	if contains(forms, verb) {
		return nil
	}
	if irregular {
		return exercise.Errorf(exercise.CodeIrregularMismatch, op,
			"%q is not an accepted form of irregular verb %q (want %s)", verb, b, strings.Join(forms, "/"))
	}
	return exercise.Errorf(exercise.CodeVerbMismatch, op,
		"%q is not a %s form of %q", verb, tense.Label(), b)
}
