package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

func TestGrammarService_ValidateNormalizes(t *testing.T) {
	g := NewGrammarService(testPipeline(t))
	if err := g.Validate(grammar.PastPerfect, " Eat", "HAD   eaten"); err != nil {
		t.Fatalf("expected valid answer, got %v", err)
	}
	if err := g.Validate(grammar.PastSimple, "go", "goed"); !exercise.HasCode(err, exercise.CodeIrregularMismatch) {
		t.Fatalf("expected irregular_mismatch, got %v", err)
	}
}

func TestGrammarService_Forms(t *testing.T) {
	g := NewGrammarService(testPipeline(t))
	got := g.Forms("Go")
	if got.Base != "go" || !got.Irregular {
		t.Fatalf("unexpected form set %+v", got)
	}
	if diff := cmp.Diff([]string{"went"}, got.Past); diff != "" {
		t.Fatalf("past forms (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"gone"}, got.PastParticiple); diff != "" {
		t.Fatalf("participle forms (-want +got):\n%s", diff)
	}
}

func TestGrammarService_Extract(t *testing.T) {
	g := NewGrammarService(testPipeline(t))
	if _, err := g.Extract("   ", []grammar.Tense{grammar.PastSimple}, gaps.Bounds{MinGaps: 1, MaxGaps: 2}); !exercise.HasCode(err, exercise.CodeInvalidRequest) {
		t.Fatalf("expected invalid_request, got %v", err)
	}

	text := "She walked to the market. They had eaten already."
	res, err := g.Extract(text, []grammar.Tense{grammar.PastSimple, grammar.PastPerfect}, gaps.Bounds{MinGaps: 2, MaxGaps: 4})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Text != "She {{1}} to the market. They {{2}} already." {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if len(res.Candidates) != 2 || len(res.Gaps) != 2 {
		t.Fatalf("expected 2 candidates and 2 gaps, got %d and %d", len(res.Candidates), len(res.Gaps))
	}
}
