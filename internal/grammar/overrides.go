package grammar

import "fmt"

// Overrides holds known spelling exceptions that generic morphology gets wrong
// (panic → panicking, begin → beginning), a lexicon of common regular verbs used
// to rank ambiguous reverse derivations, and words that are never verbs.
//
// It is deliberately separate from IrregularTable: the irregular table is
// linguistic data about past/participle forms, overrides are spelling fixes.
type Overrides struct {
	participle map[string][]string
	past       map[string][]string
	inverse    map[string]string
	lexicon    map[string]bool
	nonVerbs   map[string]bool
}

// OverrideData is the serialised form of Overrides.
type OverrideData struct {
	Participle map[string][]string `yaml:"participle"`
	Past       map[string][]string `yaml:"past"`
	// Corrections maps a surface form straight to its base when no forward
	// rule produces it (typically malformed or archaic spellings).
	Corrections map[string]string `yaml:"corrections"`
	Lexicon     []string          `yaml:"lexicon"`
	NonVerbs    []string          `yaml:"non_verbs"`
}

func NewOverrides(d OverrideData) (*Overrides, error) {
	o := &Overrides{
		participle: make(map[string][]string, len(d.Participle)),
		past:       make(map[string][]string, len(d.Past)),
		inverse:    make(map[string]string),
		lexicon:    make(map[string]bool, len(d.Lexicon)),
		nonVerbs:   make(map[string]bool, len(d.NonVerbs)),
	}
	addForward := func(dst map[string][]string, kind string, src map[string][]string) error {
		for base, forms := range src {
			b := normalizeWord(base)
			fs := normalizeForms(forms)
			if b == "" || len(fs) == 0 {
				return fmt.Errorf("%s override %q: empty base or forms", kind, base)
			}
			dst[b] = fs
			o.lexicon[b] = true
			for _, f := range fs {
				if prev, ok := o.inverse[f]; ok && prev != b {
					return fmt.Errorf("%s override %q: form %q already maps to %q", kind, b, f, prev)
				}
				o.inverse[f] = b
			}
		}
		return nil
	}
	if err := addForward(o.participle, "participle", d.Participle); err != nil {
		return nil, err
	}
	if err := addForward(o.past, "past", d.Past); err != nil {
		return nil, err
	}
	for surface, base := range d.Corrections {
		s, b := normalizeWord(surface), normalizeWord(base)
		if s == "" || b == "" {
			return nil, fmt.Errorf("correction %q → %q: empty side", surface, base)
		}
		o.inverse[s] = b
	}
	for _, w := range d.Lexicon {
		if w = normalizeWord(w); w != "" {
			o.lexicon[w] = true
		}
	}
	for _, w := range d.NonVerbs {
		if w = normalizeWord(w); w != "" {
			o.nonVerbs[w] = true
		}
	}
	return o, nil
}

// ParticipleFor returns the overriding -ing spellings for base, if any.
func (o *Overrides) ParticipleFor(base string) ([]string, bool) {
	if o == nil {
		return nil, false
	}
	f, ok := o.participle[normalizeWord(base)]
	return f, ok
}

// PastFor returns the overriding past/past-participle spellings for base, if any.
func (o *Overrides) PastFor(base string) ([]string, bool) {
	if o == nil {
		return nil, false
	}
	f, ok := o.past[normalizeWord(base)]
	return f, ok
}

// BaseFor maps an override surface form back to its base.
func (o *Overrides) BaseFor(surface string) (string, bool) {
	if o == nil {
		return "", false
	}
	b, ok := o.inverse[normalizeWord(surface)]
	return b, ok
}

// KnownVerb reports whether base is in the lexicon or has an override.
func (o *Overrides) KnownVerb(base string) bool {
	if o == nil {
		return false
	}
	return o.lexicon[normalizeWord(base)]
}

func (o *Overrides) IsNonVerb(word string) bool {
	if o == nil {
		return false
	}
	return o.nonVerbs[normalizeWord(word)]
}
