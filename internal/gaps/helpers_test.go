package gaps

import (
	"testing"

	"github.com/yungbote/storygap-backend/internal/grammar"
)

func testValidator(t *testing.T) *grammar.Validator {
	t.Helper()
	irr, err := grammar.BundledIrregularTable()
	if err != nil {
		t.Fatalf("BundledIrregularTable: %v", err)
	}
	ov, err := grammar.BundledOverrides()
	if err != nil {
		t.Fatalf("BundledOverrides: %v", err)
	}
	return grammar.NewValidator(irr, ov)
}

func assertNonOverlapping(t *testing.T, gaps []GapCandidate) {
	t.Helper()
	for i := range gaps {
		for j := i + 1; j < len(gaps); j++ {
			if gaps[i].Overlaps(gaps[j]) {
				t.Fatalf("gaps overlap: %+v and %+v", gaps[i], gaps[j])
			}
		}
	}
}

func byTense(cands []GapCandidate, tense grammar.Tense) []GapCandidate {
	var out []GapCandidate
	for _, c := range cands {
		if c.Tense == tense {
			out = append(out, c)
		}
	}
	return out
}

// story covers the mixed-past trio: five past simple, four past continuous and
// two past perfect instances.
const story = "It was a cold night. She was walking home when it started to snow. " +
	"She had forgotten her gloves, so she stopped at a shop. The owner was closing the door. " +
	"He had already locked the till, but he smiled and he opened it again. " +
	"They were talking about the storm while the wind was howling outside."
