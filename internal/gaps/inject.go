package gaps

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

var placeholderRE = regexp.MustCompile(`\{\{\d+\}\}`)

// Placeholder renders the marker for gap id n.
func Placeholder(n int) string { return "{{" + strconv.Itoa(n) + "}}" }

// Result is the rewritten text with its ordered gaps.
type Result struct {
	Text string
	Gaps []exercise.Gap
}

// Inject replaces each selected span with a sequential placeholder. gaps must
// be sorted by Start and pairwise non-overlapping. A filler adverb inside a
// span is kept in the text right before its placeholder. Any broken
// post-condition fails the whole call with placeholder_invariant_violation.
func Inject(text string, gaps []GapCandidate, v *grammar.Validator) (Result, error) {
	const op = "gaps.Inject"
	fail := func(format string, args ...any) (Result, error) {
		return Result{}, exercise.Errorf(exercise.CodePlaceholderInvariantViolated, op, format, args...)
	}
	if len(gaps) == 0 {
		return fail("no gaps to inject")
	}
	for i, g := range gaps {
		if g.Start < 0 || g.End > len(text) || g.Start >= g.End {
			return fail("gap %d span [%d, %d) outside text", i+1, g.Start, g.End)
		}
		if i > 0 && gaps[i-1].End > g.Start {
			return fail("gap %d overlaps or precedes gap %d", i+1, i)
		}
	}

	out := make([]exercise.Gap, len(gaps))
	for i, g := range gaps {
		out[i] = exercise.Gap{
			PlaceholderID: strconv.Itoa(i + 1),
			Placeholder:   Placeholder(i + 1),
			BaseVerb:      g.BaseVerb,
			CorrectAnswer: g.SurfaceAnswer,
			Tense:         string(g.Tense),
			Hint:          g.Filler,
		}
	}

	rewritten := text
	for i := len(gaps) - 1; i >= 0; i-- {
		g := gaps[i]
		repl := out[i].Placeholder
		if g.Filler != "" {
			repl = g.Filler + " " + repl
		}
		rewritten = rewritten[:g.Start] + repl + rewritten[g.End:]
	}

	if n := len(placeholderRE.FindAllString(rewritten, -1)); n != len(out) {
		return fail("text holds %d placeholders for %d gaps", n, len(out))
	}
	seen := make(map[string]bool, len(out))
	for _, g := range out {
		if seen[g.PlaceholderID] {
			return fail("duplicate placeholder id %s", g.PlaceholderID)
		}
		seen[g.PlaceholderID] = true
		if c := strings.Count(rewritten, g.Placeholder); c != 1 {
			return fail("placeholder %s occurs %d times", g.Placeholder, c)
		}
		if err := v.Validate(grammar.Tense(g.Tense), g.BaseVerb, g.CorrectAnswer); err != nil {
			return Result{}, exercise.NewError(exercise.CodePlaceholderInvariantViolated, op,
				fmt.Sprintf("gap %s no longer validates", g.PlaceholderID), err)
		}
	}
	return Result{Text: rewritten, Gaps: out}, nil
}
