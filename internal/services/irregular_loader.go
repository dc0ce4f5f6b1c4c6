package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/storygap-backend/internal/data/repos"
	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/platform/dbctx"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

const (
	IrregularSourceStore   = "store"
	IrregularSourceBundled = "bundled"
)

// LoadIrregularTable reads the irregular table from the store and falls back
// to the bundled data when the store is missing, failing or empty. It only
// errors when neither source yields a table.
func LoadIrregularTable(ctx context.Context, log *logger.Logger, repo repos.IrregularVerbRepo) (*grammar.IrregularTable, string, error) {
	log = log.With("service", "IrregularLoader")
	var storeErr error
	if repo != nil {
		entries, err := repo.List(dbctx.Context{Ctx: ctx})
		switch {
		case err != nil:
			storeErr = err
		case len(entries) == 0:
			storeErr = errors.New("irregular_verb table is empty")
		default:
			t, err := grammar.NewIrregularTable(entries)
			if err == nil {
				log.Info("irregular table loaded", "source", IrregularSourceStore, "entries", t.Len())
				return t, IrregularSourceStore, nil
			}
			storeErr = err
		}
		log.Warn("irregular store unusable; using bundled table", "error", storeErr)
	}

	t, err := grammar.BundledIrregularTable()
	if err != nil {
		return nil, "", errors.Join(fmt.Errorf("bundled irregular table: %w", err), storeErr)
	}
	log.Info("irregular table loaded", "source", IrregularSourceBundled, "entries", t.Len())
	return t, IrregularSourceBundled, nil
}

// SeedIrregularVerbs copies the bundled entries into the store, skipping
// bases that already exist.
func SeedIrregularVerbs(ctx context.Context, log *logger.Logger, repo repos.IrregularVerbRepo) (int64, error) {
	if repo == nil {
		return 0, errors.New("seed irregular verbs: no store")
	}
	entries, err := grammar.BundledIrregularEntries()
	if err != nil {
		return 0, err
	}
	n, err := repo.Seed(dbctx.Context{Ctx: ctx}, entries)
	if err != nil {
		return 0, err
	}
	log.With("service", "IrregularLoader").Info("irregular verbs seeded", "inserted", n, "bundled", len(entries))
	return n, nil
}
