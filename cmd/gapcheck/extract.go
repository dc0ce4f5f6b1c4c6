package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

type extractOptions struct {
	tenses   []string
	minGaps  int
	maxGaps  int
	parallel int
}

type extractOutput struct {
	File  string         `json:"file"`
	Text  string         `json:"text,omitempty"`
	Gaps  []exercise.Gap `json:"gaps,omitempty"`
	Code  string         `json:"code,omitempty"`
	Error string         `json:"error,omitempty"`
}

func newExtractCmd() *cobra.Command {
	opts := extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract [file...]",
		Short: "Cut gaps out of narrative files",
		Long: `Runs extract, select and inject over each file ("-" reads stdin) and
prints one JSON object per file, in argument order.

Example:
  gapcheck extract --tenses past_simple,past_continuous,past_perfect --min 8 story.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.tenses, "tenses", nil, "required tenses (comma separated)")
	cmd.Flags().IntVar(&opts.minGaps, "min", 0, "minimum gaps (defaults to the number of tenses)")
	cmd.Flags().IntVar(&opts.maxGaps, "max", 10, "maximum gaps")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 4, "files processed concurrently")
	_ = cmd.MarkFlagRequired("tenses")
	return cmd
}

func runExtract(cmd *cobra.Command, files []string, opts extractOptions) error {
	tenses, err := grammar.ParseTenses(opts.tenses)
	if err != nil {
		return err
	}
	if len(tenses) == 0 {
		return fmt.Errorf("at least one tense is required")
	}
	b := gaps.Bounds{MinGaps: opts.minGaps, MaxGaps: opts.maxGaps}
	if b.MinGaps == 0 {
		b.MinGaps = min(len(tenses), b.MaxGaps)
	}
	pipeline, err := bundledPipeline()
	if err != nil {
		return err
	}

	stdin := cmd.InOrStdin()
	results := make([]extractOutput, len(files))
	var g errgroup.Group
	g.SetLimit(max(opts.parallel, 1))
	for i, name := range files {
		g.Go(func() error {
			results[i] = extractFile(pipeline, name, stdin, tenses, b)
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func extractFile(p *gaps.Pipeline, name string, stdin io.Reader, tenses []grammar.Tense, b gaps.Bounds) extractOutput {
	out := extractOutput{File: name}
	text, err := readInput(name, stdin)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	res, err := p.Run(text, tenses, b)
	if err != nil {
		out.Code = string(exercise.CodeOf(err))
		out.Error = err.Error()
		return out
	}
	out.Text, out.Gaps = res.Text, res.Gaps
	return out
}

func readInput(name string, stdin io.Reader) (string, error) {
	var (
		raw []byte
		err error
	)
	if name == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", fmt.Errorf("%s: empty input", name)
	}
	return text, nil
}
