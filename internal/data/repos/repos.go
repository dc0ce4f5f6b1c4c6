package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/data/repos/exercises"
	"github.com/yungbote/storygap-backend/internal/data/repos/verbs"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type IrregularVerbRepo = verbs.IrregularVerbRepo
type StoredExerciseRepo = exercises.StoredExerciseRepo

func NewIrregularVerbRepo(db *gorm.DB, baseLog *logger.Logger) IrregularVerbRepo {
	return verbs.NewIrregularVerbRepo(db, baseLog)
}
func NewStoredExerciseRepo(db *gorm.DB, baseLog *logger.Logger) StoredExerciseRepo {
	return exercises.NewStoredExerciseRepo(db, baseLog)
}
