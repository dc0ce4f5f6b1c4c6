// Command gapcheck runs the gap pipeline and the tense validator from the
// command line, for authoring and debugging exercise data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gapcheck",
		Short: "Extract tense gaps and validate verb forms",
		Long: `gapcheck exposes the storygap grammar engine offline.

It uses the bundled irregular verb table and overrides, so results match a
server running without a store.`,
		SilenceUsage: true,
	}
	root.AddCommand(newExtractCmd(), newValidateCmd(), newFormsCmd(), newSeedCmd())
	return root
}

func bundledPipeline() (*gaps.Pipeline, error) {
	irr, err := grammar.BundledIrregularTable()
	if err != nil {
		return nil, fmt.Errorf("irregular table: %w", err)
	}
	ov, err := grammar.BundledOverrides()
	if err != nil {
		return nil, fmt.Errorf("overrides: %w", err)
	}
	return gaps.NewPipeline(grammar.NewValidator(irr, ov)), nil
}
