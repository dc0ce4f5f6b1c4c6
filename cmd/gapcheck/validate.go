package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <tense> <base> <answer...>",
		Short: "Check one answer against a tense and base verb",
		Example: `  gapcheck validate past_perfect eat had eaten
  gapcheck validate "present continuous" run "is running"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tense, err := grammar.ParseTense(args[0])
			if err != nil {
				return err
			}
			p, err := bundledPipeline()
			if err != nil {
				return err
			}
			answer := strings.Join(args[2:], " ")
			if err := p.Extractor().Validator().Validate(tense, args[1], answer); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", exercise.CodeOf(err), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s %s: %q\n", tense.Label(), args[1], answer)
			return nil
		},
	}
}

func newFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms <base...>",
		Short: "Print the forms the validator accepts for base verbs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := bundledPipeline()
			if err != nil {
				return err
			}
			v := p.Extractor().Validator()
			w := cmd.OutOrStdout()
			for _, base := range args {
				base = strings.ToLower(strings.TrimSpace(base))
				past, irregular := v.PastForms(base)
				participle, _ := v.PastParticipleForms(base)
				kind := "regular"
				if irregular {
					kind = "irregular"
				}
				fmt.Fprintf(w, "%s (%s)\n", base, kind)
				fmt.Fprintf(w, "  present:            %s\n", strings.Join(v.PresentForms(base), ", "))
				fmt.Fprintf(w, "  past:               %s\n", strings.Join(past, ", "))
				fmt.Fprintf(w, "  past participle:    %s\n", strings.Join(participle, ", "))
				fmt.Fprintf(w, "  present participle: %s\n", strings.Join(v.ParticipleForms(base), ", "))
			}
			return nil
		},
	}
}
