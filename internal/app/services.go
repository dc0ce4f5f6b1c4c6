package app

import (
	"context"
	"fmt"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/events"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
	"github.com/yungbote/storygap-backend/internal/services"
)

type Services struct {
	Exercise services.ExerciseService
	Grammar  services.GrammarService
	Answers  services.AnswerService

	// IrregularSource is "store" or "bundled".
	IrregularSource string
}

func wireServices(ctx context.Context, log *logger.Logger, cfg *config.Config, reposet Repos, bus events.Bus) (Services, error) {
	log.Info("Wiring services...")

	irregular, source, err := services.LoadIrregularTable(ctx, log, reposet.IrregularVerb)
	if err != nil {
		return Services{}, fmt.Errorf("load irregular table: %w", err)
	}
	overrides, err := grammar.BundledOverrides()
	if err != nil {
		return Services{}, fmt.Errorf("load overrides: %w", err)
	}
	validator := grammar.NewValidator(irregular, overrides)
	pipeline := gaps.NewPipeline(validator)

	src, err := wireSource(log, cfg)
	if err != nil {
		return Services{}, err
	}
	exercise, err := services.NewExerciseService(log, cfg, services.ExerciseServiceDeps{
		Source:   src,
		Pipeline: pipeline,
		Store:    reposet.StoredExercise,
		Bus:      bus,
	})
	if err != nil {
		return Services{}, err
	}

	return Services{
		Exercise:        exercise,
		Grammar:         services.NewGrammarService(pipeline),
		Answers:         services.NewAnswerService(log, reposet.StoredExercise, validator),
		IrregularSource: source,
	}, nil
}
