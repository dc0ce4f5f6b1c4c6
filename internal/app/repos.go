package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/data/repos"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

// Repos is empty when the app runs without a store.
type Repos struct {
	IrregularVerb  repos.IrregularVerbRepo
	StoredExercise  repos.StoredExerciseRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	if db == nil {
		log.Info("No store configured; skipping repos")
		return Repos{}
	}
	log.Info("Wiring repos...")
	return Repos{
		IrregularVerb:  repos.NewIrregularVerbRepo(db, log),
		StoredExercise: repos.NewStoredExerciseRepo(db, log),
	}
}
