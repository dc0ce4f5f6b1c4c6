package exercise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IrregularVerb is the persisted form of one irregular-table entry.
// PastForms and ParticipleForms are JSON string arrays.
type IrregularVerb struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Base            string         `gorm:"column:base;not null;uniqueIndex" json:"base"`
	PastForms       datatypes.JSON `gorm:"column:past_forms;type:jsonb;not null" json:"past_forms"`
	ParticipleForms datatypes.JSON `gorm:"column:participle_forms;type:jsonb;not null" json:"participle_forms"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (IrregularVerb) TableName() string { return "irregular_verb" }

func (v *IrregularVerb) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// StoredExercise keeps built payloads so learner answers can be checked later.
type StoredExercise struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string         `gorm:"column:category;not null;index" json:"category"`
	Text        string         `gorm:"column:text;type:text;not null" json:"text"`
	Gaps        datatypes.JSON `gorm:"column:gaps;type:jsonb;not null" json:"gaps"`
	SourceModel string         `gorm:"column:source_model" json:"source_model,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StoredExercise) TableName() string { return "stored_exercise" }

func (s *StoredExercise) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
