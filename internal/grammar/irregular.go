package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// IrregularEntry lists the accepted past and past-participle spellings of one
// irregular verb. Multiple spellings model regional variants (dreamed/dreamt).
type IrregularEntry struct {
	Base            string   `yaml:"base" json:"base"`
	PastForms       []string `yaml:"past" json:"past_forms"`
	ParticipleForms []string `yaml:"participle" json:"participle_forms"`
}

func (e IrregularEntry) HasPast(form string) bool       { return contains(e.PastForms, form) }
func (e IrregularEntry) HasParticiple(form string) bool { return contains(e.ParticipleForms, form) }

// IrregularTable is an immutable lookup over irregular verbs with reverse
// indexes from every past and participle spelling back to its bases.
type IrregularTable struct {
	byBase       map[string]IrregularEntry
	byPast       map[string][]string
	byParticiple map[string][]string
}

// NewIrregularTable normalises entries (lowercase, trimmed, de-duplicated) and
// builds the reverse indexes. It rejects entries missing a base or a form.
func NewIrregularTable(entries []IrregularEntry) (*IrregularTable, error) {
	t := &IrregularTable{
		byBase:       make(map[string]IrregularEntry, len(entries)),
		byPast:       make(map[string][]string, len(entries)),
		byParticiple: make(map[string][]string, len(entries)),
	}
	for i, raw := range entries {
		e := IrregularEntry{
			Base:            normalizeWord(raw.Base),
			PastForms:       normalizeForms(raw.PastForms),
			ParticipleForms: normalizeForms(raw.ParticipleForms),
		}
		if e.Base == "" {
			return nil, fmt.Errorf("irregular entry %d: empty base", i)
		}
		if len(e.PastForms) == 0 || len(e.ParticipleForms) == 0 {
			return nil, fmt.Errorf("irregular entry %q: needs at least one past and one participle form", e.Base)
		}
		if _, dup := t.byBase[e.Base]; dup {
			return nil, fmt.Errorf("irregular entry %q: duplicate base", e.Base)
		}
		t.byBase[e.Base] = e
		for _, f := range e.PastForms {
			t.byPast[f] = append(t.byPast[f], e.Base)
		}
		for _, f := range e.ParticipleForms {
			t.byParticiple[f] = append(t.byParticiple[f], e.Base)
		}
	}
	return t, nil
}

func (t *IrregularTable) LookupByBase(base string) (IrregularEntry, bool) {
	if t == nil {
		return IrregularEntry{}, false
	}
	e, ok := t.byBase[normalizeWord(base)]
	return e, ok
}

// LookupByPastForm returns every base whose past forms include form, in table order.
func (t *IrregularTable) LookupByPastForm(form string) []string {
	if t == nil {
		return nil
	}
	return t.byPast[normalizeWord(form)]
}

// LookupByParticipleForm returns every base whose participle forms include form.
func (t *IrregularTable) LookupByParticipleForm(form string) []string {
	if t == nil {
		return nil
	}
	return t.byParticiple[normalizeWord(form)]
}

func (t *IrregularTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byBase)
}

// Entries returns all entries sorted by base.
func (t *IrregularTable) Entries() []IrregularEntry {
	if t == nil {
		return nil
	}
	out := make([]IrregularEntry, 0, len(t.byBase))
	for _, e := range t.byBase {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

func normalizeWord(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normalizeForms(forms []string) []string {
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		f = normalizeWord(f)
		if f == "" || contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
