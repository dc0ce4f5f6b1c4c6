package gaps

import (
	"strings"
	"testing"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

func TestInject_RewritesDescendingAndKeepsFiller(t *testing.T) {
	v := testValidator(t)
	text := "She had always enjoyed tea. They were running late."
	tenses := []grammar.Tense{grammar.PastPerfect, grammar.PastContinuous}
	chosen, err := Select(NewExtractor(v).Extract(text, tenses), tenses, Bounds{MinGaps: 2, MaxGaps: 4})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	res, err := Inject(text, chosen, v)
	if err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if want := "She always {{1}} tea. They {{2}} late."; res.Text != want {
		t.Fatalf("unexpected text:\n got %q\nwant %q", res.Text, want)
	}
	if len(res.Gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %+v", res.Gaps)
	}
	g := res.Gaps[0]
	if g.PlaceholderID != "1" || g.BaseVerb != "enjoy" || g.CorrectAnswer != "had enjoyed" || g.Hint != "always" {
		t.Fatalf("unexpected first gap %+v", g)
	}
	if g := res.Gaps[1]; g.Placeholder != "{{2}}" || g.CorrectAnswer != "were running" || g.Tense != string(grammar.PastContinuous) {
		t.Fatalf("unexpected second gap %+v", g)
	}
}

func TestInject_PlaceholderInvariants(t *testing.T) {
	v := testValidator(t)
	went := GapCandidate{Start: 3, End: 7, Tense: grammar.PastSimple, BaseVerb: "go", SurfaceAnswer: "went"}
	cases := map[string]struct {
		text string
		gaps []GapCandidate
	}{
		"no gaps":              {"He went home.", nil},
		"stray placeholder":    {"He went home {{9}}.", []GapCandidate{went}},
		"out of range":         {"He", []GapCandidate{went}},
		"overlap":              {"He went home.", []GapCandidate{went, {Start: 5, End: 9, Tense: grammar.PastSimple, BaseVerb: "go", SurfaceAnswer: "went"}}},
		"fails revalidation":   {"He went home.", []GapCandidate{{Start: 3, End: 7, Tense: grammar.PastSimple, BaseVerb: "walk", SurfaceAnswer: "went"}}},
		"placeholder repeated": {"He went home {{1}}.", []GapCandidate{went}},
	}
	for name, tc := range cases {
		_, err := Inject(tc.text, tc.gaps, v)
		if code := exercise.CodeOf(err); code != exercise.CodePlaceholderInvariantViolated {
			t.Fatalf("%s: expected %s, got %q (%v)", name, exercise.CodePlaceholderInvariantViolated, code, err)
		}
	}
}

func TestPlaceholder_IDsDoNotCollide(t *testing.T) {
	text := Placeholder(1) + " " + Placeholder(10) + " " + Placeholder(11)
	if strings.Count(text, Placeholder(1)) != 1 {
		t.Fatalf("expected {{1}} to occur exactly once in %q", text)
	}
}
