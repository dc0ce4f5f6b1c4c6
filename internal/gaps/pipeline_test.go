package gaps

import (
	"strings"
	"testing"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

func TestPipeline_MixedPastStory(t *testing.T) {
	v := testValidator(t)
	p := NewPipeline(v)
	tenses := []grammar.Tense{grammar.PastSimple, grammar.PastContinuous, grammar.PastPerfect}

	res, err := p.Run(story, tenses, Bounds{MinGaps: 6, MaxGaps: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Gaps) != 10 {
		t.Fatalf("expected 10 gaps, got %d", len(res.Gaps))
	}
	if n := len(placeholderRE.FindAllString(res.Text, -1)); n != len(res.Gaps) {
		t.Fatalf("expected %d placeholders, found %d in %q", len(res.Gaps), n, res.Text)
	}
	seen := map[string]int{}
	for _, g := range res.Gaps {
		seen[g.Tense]++
		if strings.Count(res.Text, g.Placeholder) != 1 {
			t.Fatalf("placeholder %s should occur once in %q", g.Placeholder, res.Text)
		}
		if err := v.Validate(grammar.Tense(g.Tense), g.BaseVerb, g.CorrectAnswer); err != nil {
			t.Fatalf("gap %+v does not validate: %v", g, err)
		}
	}
	for _, tense := range tenses {
		if seen[string(tense)] == 0 {
			t.Fatalf("tense %s missing from %+v", tense, res.Gaps)
		}
	}
	if !strings.Contains(res.Text, "already {{") {
		t.Fatalf("expected filler kept before its placeholder in %q", res.Text)
	}
}

func TestPipeline_TooFewCandidates(t *testing.T) {
	text := "She had finished. He had cooked. They had cleaned. We were singing. I was reading. You were dancing."
	p := NewPipeline(testValidator(t))
	tenses := []grammar.Tense{grammar.PastPerfect, grammar.PastContinuous}

	if n := len(p.Extractor().Extract(text, tenses)); n != 6 {
		t.Fatalf("expected 6 candidates, got %d", n)
	}
	_, err := p.Run(text, tenses, Bounds{MinGaps: 10, MaxGaps: 12})
	if code := exercise.CodeOf(err); code != exercise.CodeTooFewCandidates {
		t.Fatalf("expected %s, got %q (%v)", exercise.CodeTooFewCandidates, code, err)
	}
}

func TestPipeline_RejectsUnknownTense(t *testing.T) {
	p := NewPipeline(testValidator(t))
	_, err := p.Run(story, []grammar.Tense{"aorist"}, Bounds{MinGaps: 1, MaxGaps: 2})
	if code := exercise.CodeOf(err); code != exercise.CodeInvalidRequest {
		t.Fatalf("expected %s, got %q", exercise.CodeInvalidRequest, code)
	}
}
