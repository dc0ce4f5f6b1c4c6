package observability

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key = abc ,broken, =x, team=storygap")
	want := map[string]string{"api-key": "abc", "team": "storygap"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("headers (-want +got):\n%s", diff)
	}
	if parseHeaders("") != nil {
		t.Fatalf("expected nil for empty headers")
	}
}

func TestSampleRatioClamps(t *testing.T) {
	cases := map[string]float64{"": 0.1, "0.5": 0.5, "7": 1, "-1": 0, "nope": 0.1}
	for in, want := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", in)
		if got := sampleRatio(); got != want {
			t.Fatalf("ratio %q: expected %v got %v", in, want, got)
		}
	}
}
