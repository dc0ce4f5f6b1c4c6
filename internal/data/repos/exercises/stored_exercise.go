package exercises

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/data/dberr"
	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/platform/dbctx"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type StoredExerciseRepo interface {
	Create(dbc dbctx.Context, p *exercise.Payload) error
	// GetByID returns (nil, nil) when no exercise has that id.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*exercise.Payload, error)
	ListByCategory(dbc dbctx.Context, category string, limit int) ([]*exercise.Payload, error)
	SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type storedExerciseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoredExerciseRepo(db *gorm.DB, baseLog *logger.Logger) StoredExerciseRepo {
	return &storedExerciseRepo{db: db, log: baseLog.With("repo", "StoredExerciseRepo")}
}

func (r *storedExerciseRepo) Create(dbc dbctx.Context, p *exercise.Payload) error {
	const op = "exercises.Create"
	if p == nil || p.ID == uuid.Nil {
		return exercise.Errorf(exercise.CodeInvalidRequest, op, "payload id required")
	}
	gaps, err := json.Marshal(p.Gaps)
	if err != nil {
		return exercise.Wrap(exercise.CodeInternal, op, err)
	}
	row := &exercise.StoredExercise{
		ID:          p.ID,
		Category:    p.Category,
		Text:        p.Text,
		Gaps:        datatypes.JSON(gaps),
		SourceModel: p.SourceModel,
		CreatedAt:   p.CreatedAt,
	}
	return dberr.Map(op, dbc.DB(r.db).Create(row).Error)
}

func (r *storedExerciseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*exercise.Payload, error) {
	const op = "exercises.GetByID"
	if id == uuid.Nil {
		return nil, nil
	}
	var row exercise.StoredExercise
	err := dbc.DB(r.db).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Map(op, err)
	}
	return toPayload(row)
}

func (r *storedExerciseRepo) ListByCategory(dbc dbctx.Context, category string, limit int) ([]*exercise.Payload, error) {
	const op = "exercises.ListByCategory"
	out := []*exercise.Payload{}
	if category == "" {
		return out, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []exercise.StoredExercise
	if err := dbc.DB(r.db).
		Where("category = ?", category).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, dberr.Map(op, err)
	}
	for _, row := range rows {
		p, err := toPayload(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *storedExerciseRepo) SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := dbc.DB(r.db).Where("id IN ?", ids).Delete(&exercise.StoredExercise{}).Error
	return dberr.Map("exercises.SoftDeleteByIDs", err)
}

func toPayload(row exercise.StoredExercise) (*exercise.Payload, error) {
	p := &exercise.Payload{
		ID:          row.ID,
		Category:    row.Category,
		Text:        row.Text,
		SourceModel: row.SourceModel,
		CreatedAt:   row.CreatedAt,
	}
	if err := json.Unmarshal(row.Gaps, &p.Gaps); err != nil {
		return nil, exercise.Wrap(exercise.CodeInternal, "exercises.toPayload", err)
	}
	return p, nil
}
