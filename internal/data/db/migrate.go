package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&exercise.IrregularVerb{},
		&exercise.StoredExercise{},
	)
}
