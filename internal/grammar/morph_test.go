package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPresentParticipleCandidates_DoublesSingleSyllableCVC(t *testing.T) {
	got := PresentParticipleCandidates("stop")
	if !contains(got, "stopping") {
		t.Fatalf("expected stopping in %v", got)
	}
	if contains(got, "stoping") {
		t.Fatalf("expected stoping to be excluded, got %v", got)
	}
}

func TestPresentParticipleCandidates_IeBecomesYing(t *testing.T) {
	got := PresentParticipleCandidates("lie")
	if !contains(got, "lying") {
		t.Fatalf("expected lying in %v", got)
	}
}

func TestPresentParticipleCandidates(t *testing.T) {
	cases := map[string][]string{
		"make":   {"making"},
		"run":    {"running"},
		"visit":  {"visiting"},
		"open":   {"opening"},
		"travel": {"traveling", "travelling"},
		"see":    {"seeing"},
		"play":   {"playing"},
		"fix":    {"fixing"},
		"snow":   {"snowing"},
		"be":     {"being"},
		"dye":    {"dyeing"},
		"quit":   {"quitting"},
		"wait":   {"waiting"},
		"":       nil,
	}
	for base, want := range cases {
		if diff := cmp.Diff(want, PresentParticipleCandidates(base)); diff != "" {
			t.Fatalf("PresentParticipleCandidates(%q) mismatch (-want +got):\n%s", base, diff)
		}
	}
}

func TestThirdPersonSingularCandidates(t *testing.T) {
	cases := map[string][]string{
		"go":    {"goes"},
		"watch": {"watches"},
		"fix":   {"fixes"},
		"carry": {"carries"},
		"play":  {"plays"},
		"work":  {"works"},
		"have":  {"has"},
		"be":    {"is", "are", "am"},
	}
	for base, want := range cases {
		if diff := cmp.Diff(want, ThirdPersonSingularCandidates(base)); diff != "" {
			t.Fatalf("ThirdPersonSingularCandidates(%q) mismatch (-want +got):\n%s", base, diff)
		}
	}
}

func TestRegularPastCandidates(t *testing.T) {
	cases := map[string][]string{
		"like":   {"liked"},
		"carry":  {"carried"},
		"stop":   {"stopped"},
		"play":   {"played"},
		"walk":   {"walked"},
		"travel": {"traveled", "travelled"},
	}
	for base, want := range cases {
		if diff := cmp.Diff(want, RegularPastCandidates(base)); diff != "" {
			t.Fatalf("RegularPastCandidates(%q) mismatch (-want +got):\n%s", base, diff)
		}
	}
}

func TestInverseParticipleCandidates(t *testing.T) {
	cases := map[string][]string{
		"running": {"run", "runn"},
		"making":  {"mak", "make"},
		"lying":   {"lie", "ly"},
		"dancing": {"dance", "danc"},
		"walking": {"walk", "walke"},
		"seeing":  {"see"},
		"using":   {"use", "us"},
		"falling": {"fall", "fal"},
	}
	for form, want := range cases {
		if diff := cmp.Diff(want, InverseParticipleCandidates(form)); diff != "" {
			t.Fatalf("InverseParticipleCandidates(%q) mismatch (-want +got):\n%s", form, diff)
		}
	}
	if got := InverseParticipleCandidates("sing"); got != nil {
		t.Fatalf("expected no candidates for a four-letter -ing word, got %v", got)
	}
}

func TestInversePastCandidates(t *testing.T) {
	cases := map[string][]string{
		"stopped": {"stop", "stopp"},
		"carried": {"carry", "carrie", "carri"},
		"died":    {"die", "dy", "di"},
		"liked":   {"lik", "like"},
		"agreed":  {"agree", "agre"},
		"enjoyed": {"enjoy"},
	}
	for form, want := range cases {
		if diff := cmp.Diff(want, InversePastCandidates(form)); diff != "" {
			t.Fatalf("InversePastCandidates(%q) mismatch (-want +got):\n%s", form, diff)
		}
	}
	if got := InversePastCandidates("red"); got != nil {
		t.Fatalf("expected no candidates for %q, got %v", "red", got)
	}
}

func TestInverseThirdPersonCandidates(t *testing.T) {
	cases := map[string][]string{
		"watches": {"watch", "watche"},
		"makes":   {"make", "mak"},
		"carries": {"carry", "carrie"},
		"goes":    {"go", "goe"},
		"walks":   {"walk"},
		"has":     {"have"},
		"is":      {"be"},
		"kiss":    nil,
	}
	for form, want := range cases {
		if diff := cmp.Diff(want, InverseThirdPersonCandidates(form)); diff != "" {
			t.Fatalf("InverseThirdPersonCandidates(%q) mismatch (-want +got):\n%s", form, diff)
		}
	}
}

func TestCandidateFunctionsStayWithinLimit(t *testing.T) {
	words := []string{"stopping", "travelled", "carries", "quizzing", "dyeing", "died", "being"}
	for _, w := range words {
		for name, fn := range map[string]func(string) []string{
			"participle": InverseParticipleCandidates,
			"past":       InversePastCandidates,
			"third":      InverseThirdPersonCandidates,
		} {
			if got := fn(w); len(got) > maxCandidates {
				t.Fatalf("%s(%q) returned %d candidates: %v", name, w, len(got), got)
			}
		}
	}
}
