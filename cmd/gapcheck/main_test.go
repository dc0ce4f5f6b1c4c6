package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExtractFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(good, []byte("She walked to the market. They had eaten already."), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("The lamps glowed over the quiet square."), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "extract", "--tenses", "past_simple,past_perfect", good, bad)
	if err == nil {
		t.Fatalf("expected an error when one file fails")
	}

	dec := json.NewDecoder(strings.NewReader(out))
	var results []extractOutput
	for dec.More() {
		var r extractOutput
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode output: %v\n%s", err, out)
		}
		results = append(results, r)
	}
	if len(results) != 2 || results[0].File != good || results[1].File != bad {
		t.Fatalf("expected results in argument order, got %+v", results)
	}
	if results[0].Text != "She {{1}} to the market. They {{2}} already." || len(results[0].Gaps) != 2 {
		t.Fatalf("unexpected result for good file: %+v", results[0])
	}
	if results[1].Code != "empty_tense_candidates" {
		t.Fatalf("expected empty_tense_candidates for bad file, got %+v", results[1])
	}
}

func TestExtractStdin(t *testing.T) {
	out, err := execute(t, "We were dancing when it started.", "extract", "--tenses", "past continuous", "-")
	if err != nil {
		t.Fatalf("extract: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"were dancing"`) {
		t.Fatalf("expected the past continuous answer in output:\n%s", out)
	}
}

func TestExtractRejectsUnknownTense(t *testing.T) {
	if _, err := execute(t, "", "extract", "--tenses", "pluperfect", "-"); err == nil {
		t.Fatalf("expected error for unknown tense")
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "", "validate", "past_perfect", "eat", "had", "eaten")
	if err != nil || !strings.HasPrefix(out, "ok") {
		t.Fatalf("expected ok, got %q err=%v", out, err)
	}
	out, err = execute(t, "", "validate", "past_simple", "go", "goed")
	if err == nil || !strings.HasPrefix(out, "irregular_mismatch") {
		t.Fatalf("expected irregular_mismatch, got %q err=%v", out, err)
	}
}

func TestForms(t *testing.T) {
	out, err := execute(t, "", "forms", "go", "walk")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	for _, want := range []string{"go (irregular)", "went", "gone", "walk (regular)", "walked", "walking"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
