package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/storygap-backend/internal/data/db"
	"github.com/yungbote/storygap-backend/internal/data/repos"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
	"github.com/yungbote/storygap-backend/internal/services"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the bundled irregular verbs into postgres",
		Long: `Connects with the POSTGRES_* environment, migrates the schema and inserts
every bundled irregular verb whose base is not stored yet. Existing rows are
left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(os.Getenv("LOG_MODE"))
			if err != nil {
				return err
			}
			defer log.Sync()

			pg, err := db.NewPostgresService(log)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := db.AutoMigrateAll(pg.DB()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			n, err := services.SeedIrregularVerbs(cmd.Context(), log, repos.NewIrregularVerbRepo(pg.DB(), log))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d irregular verbs\n", n)
			return nil
		},
	}
}
