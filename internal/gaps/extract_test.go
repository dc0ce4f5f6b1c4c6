package gaps

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/storygap-backend/internal/grammar"
)

func TestExtract_FillerExcludedFromAnswer(t *testing.T) {
	text := "She had always enjoyed the quiet mornings."
	ex := NewExtractor(testValidator(t))

	got := ex.Extract(text, []grammar.Tense{grammar.PastPerfect})
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(got), got)
	}
	c := got[0]
	if c.BaseVerb != "enjoy" {
		t.Fatalf("expected base enjoy, got %q", c.BaseVerb)
	}
	if c.SurfaceAnswer != "had enjoyed" {
		t.Fatalf("expected surface answer %q, got %q", "had enjoyed", c.SurfaceAnswer)
	}
	if c.Filler != "always" {
		t.Fatalf("expected filler always, got %q", c.Filler)
	}
	had := strings.Index(text, "had")
	enjoyed := strings.Index(text, "enjoyed")
	want := []Span{{Start: had, End: had + 3}, {Start: enjoyed, End: enjoyed + len("enjoyed")}}
	if diff := cmp.Diff(want, c.Segments); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	for _, seg := range c.Segments {
		if strings.Contains(text[seg.Start:seg.End], "always") {
			t.Fatalf("segment %q includes the filler", text[seg.Start:seg.End])
		}
	}
	if c.Start != had || c.End != enjoyed+len("enjoyed") {
		t.Fatalf("unexpected span [%d, %d)", c.Start, c.End)
	}
}

func TestExtract_LongerTenseWinsAtSameStart(t *testing.T) {
	text := "They were running home when it started to rain."
	ex := NewExtractor(testValidator(t))

	got := ex.Extract(text, []grammar.Tense{grammar.PastSimple, grammar.PastContinuous})
	ps := byTense(got, grammar.PastSimple)
	pc := byTense(got, grammar.PastContinuous)
	if len(ps) != 1 || ps[0].SurfaceAnswer != "started" || ps[0].BaseVerb != "start" {
		t.Fatalf("expected only started as past simple, got %+v", ps)
	}
	if len(pc) != 1 || pc[0].SurfaceAnswer != "were running" || pc[0].BaseVerb != "run" {
		t.Fatalf("expected were running as past continuous, got %+v", pc)
	}
}

func TestExtract_FuturePerfectContinuousSuppressesShorterTenses(t *testing.T) {
	text := "By June we will have been living here for a year."
	ex := NewExtractor(testValidator(t))

	got := ex.Extract(text, []grammar.Tense{grammar.FutureSimple, grammar.FuturePerfect, grammar.FuturePerfectContinuous})
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", got)
	}
	if got[0].Tense != grammar.FuturePerfectContinuous || got[0].BaseVerb != "live" {
		t.Fatalf("unexpected candidate %+v", got[0])
	}
}

func TestExtract_LongerMatchStartingEarlierSuppressesSuffixTense(t *testing.T) {
	ex := NewExtractor(testValidator(t))

	text := "By noon they will have finished the work, and she will have been working for hours."
	got := ex.Extract(text, []grammar.Tense{grammar.PresentPerfect, grammar.PresentPerfectContinuous})
	if len(got) != 0 {
		t.Fatalf("expected no candidates inside future perfect spans, got %+v", got)
	}

	got = ex.Extract("They will have gone before we have eaten.", []grammar.Tense{grammar.PresentPerfect})
	if len(got) != 1 || got[0].SurfaceAnswer != "have eaten" || got[0].BaseVerb != "eat" {
		t.Fatalf("expected only have eaten, got %+v", got)
	}

	got = ex.Extract(text, []grammar.Tense{grammar.FuturePerfect, grammar.FuturePerfectContinuous})
	var surfaces []string
	for _, c := range got {
		surfaces = append(surfaces, c.SurfaceAnswer)
	}
	if diff := cmp.Diff([]string{"will have finished", "will have been working"}, surfaces); diff != "" {
		t.Fatalf("surfaces mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_PresentSimpleNeedsSubjectAndVerb(t *testing.T) {
	ex := NewExtractor(testValidator(t))

	got := ex.Extract("Every day she walks to the park and it rains.", []grammar.Tense{grammar.PresentSimple})
	var bases []string
	for _, c := range got {
		bases = append(bases, c.BaseVerb)
	}
	if diff := cmp.Diff([]string{"walk", "rain"}, bases); diff != "" {
		t.Fatalf("bases mismatch (-want +got):\n%s", diff)
	}

	got = ex.Extract("I think it table.", []grammar.Tense{grammar.PresentSimple})
	if len(got) != 1 || got[0].BaseVerb != "think" {
		t.Fatalf("expected only think, got %+v", got)
	}

	got = ex.Extract("I walk to school and they play outside.", []grammar.Tense{grammar.PresentSimple})
	bases = bases[:0]
	for _, c := range got {
		bases = append(bases, c.BaseVerb)
	}
	if diff := cmp.Diff([]string{"walk", "play"}, bases); diff != "" {
		t.Fatalf("bare known verbs mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_RejectsNonVerbsIrregularMisspellingsAndPunctuation(t *testing.T) {
	ex := NewExtractor(testValidator(t))
	cases := []struct {
		text  string
		tense grammar.Tense
	}{
		{"He was nothing like his brother.", grammar.PastContinuous},
		{"She had goed to the market.", grammar.PastPerfect},
		{"He had, always, enjoyed it.", grammar.PastPerfect},
		{"Tom went home.", grammar.PastSimple},
	}
	for _, tc := range cases {
		if got := ex.Extract(tc.text, []grammar.Tense{tc.tense}); len(got) != 0 {
			t.Fatalf("%q: expected no %s candidates, got %+v", tc.text, tc.tense, got)
		}
	}
}

func TestExtract_IrregularReverseLookup(t *testing.T) {
	ex := NewExtractor(testValidator(t))
	got := ex.Extract("By noon they had gone and we had eaten.", []grammar.Tense{grammar.PastPerfect})
	var bases []string
	for _, c := range got {
		bases = append(bases, c.BaseVerb)
	}
	if diff := cmp.Diff([]string{"go", "eat"}, bases); diff != "" {
		t.Fatalf("bases mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_CandidatesRevalidate(t *testing.T) {
	v := testValidator(t)
	ex := NewExtractor(v)
	got := ex.Extract(story, grammar.AllTenses)
	if len(got) == 0 {
		t.Fatalf("expected candidates")
	}
	for _, c := range got {
		if err := v.Validate(c.Tense, c.BaseVerb, c.SurfaceAnswer); err != nil {
			t.Fatalf("candidate %+v does not revalidate: %v", c, err)
		}
		if c.Filler == "" {
			raw := strings.Join(strings.Fields(strings.ToLower(story[c.Start:c.End])), " ")
			if raw != c.SurfaceAnswer {
				t.Fatalf("surface answer %q differs from source %q", c.SurfaceAnswer, raw)
			}
		}
	}
	for _, tense := range grammar.AllTenses {
		assertNonOverlapping(t, byTense(got, tense))
	}
}
