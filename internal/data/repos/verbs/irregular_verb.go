package verbs

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storygap-backend/internal/data/dberr"
	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/platform/dbctx"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type IrregularVerbRepo interface {
	// List returns every stored entry ordered by base.
	List(dbc dbctx.Context) ([]grammar.IrregularEntry, error)
	Count(dbc dbctx.Context) (int64, error)
	// Upsert writes entries, replacing the forms of bases that already exist.
	Upsert(dbc dbctx.Context, entries []grammar.IrregularEntry) error
	// Seed inserts entries whose base is not stored yet and reports how many were added.
	Seed(dbc dbctx.Context, entries []grammar.IrregularEntry) (int64, error)
}

type irregularVerbRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIrregularVerbRepo(db *gorm.DB, baseLog *logger.Logger) IrregularVerbRepo {
	return &irregularVerbRepo{db: db, log: baseLog.With("repo", "IrregularVerbRepo")}
}

func (r *irregularVerbRepo) List(dbc dbctx.Context) ([]grammar.IrregularEntry, error) {
	const op = "verbs.List"
	var rows []exercise.IrregularVerb
	if err := dbc.DB(r.db).Order("base ASC").Find(&rows).Error; err != nil {
		return nil, dberr.Map(op, err)
	}
	out := make([]grammar.IrregularEntry, 0, len(rows))
	for _, row := range rows {
		e, err := toEntry(row)
		if err != nil {
			return nil, exercise.Wrap(exercise.CodeInternal, op, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *irregularVerbRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&exercise.IrregularVerb{}).Count(&n).Error; err != nil {
		return 0, dberr.Map("verbs.Count", err)
	}
	return n, nil
}

func (r *irregularVerbRepo) Upsert(dbc dbctx.Context, entries []grammar.IrregularEntry) error {
	const op = "verbs.Upsert"
	rows, err := toRows(entries)
	if err != nil {
		return exercise.Wrap(exercise.CodeInvalidRequest, op, err)
	}
	if len(rows) == 0 {
		return nil
	}
	err = dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base"}},
		DoUpdates: clause.AssignmentColumns([]string{"past_forms", "participle_forms", "updated_at"}),
	}).Create(&rows).Error
	return dberr.Map(op, err)
}

func (r *irregularVerbRepo) Seed(dbc dbctx.Context, entries []grammar.IrregularEntry) (int64, error) {
	const op = "verbs.Seed"
	rows, err := toRows(entries)
	if err != nil {
		return 0, exercise.Wrap(exercise.CodeInvalidRequest, op, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base"}},
		DoNothing: true,
	}).CreateInBatches(&rows, 100)
	if res.Error != nil {
		return 0, dberr.Map(op, res.Error)
	}
	r.log.Debug("seeded irregular verbs", "offered", len(rows), "inserted", res.RowsAffected)
	return res.RowsAffected, nil
}

func toRows(entries []grammar.IrregularEntry) ([]exercise.IrregularVerb, error) {
	rows := make([]exercise.IrregularVerb, 0, len(entries))
	for _, e := range entries {
		if e.Base == "" || len(e.PastForms) == 0 || len(e.ParticipleForms) == 0 {
			return nil, fmt.Errorf("incomplete irregular entry %q", e.Base)
		}
		past, err := json.Marshal(e.PastForms)
		if err != nil {
			return nil, err
		}
		part, err := json.Marshal(e.ParticipleForms)
		if err != nil {
			return nil, err
		}
		rows = append(rows, exercise.IrregularVerb{
			Base:            e.Base,
			PastForms:       datatypes.JSON(past),
			ParticipleForms: datatypes.JSON(part),
		})
	}
	return rows, nil
}

func toEntry(row exercise.IrregularVerb) (grammar.IrregularEntry, error) {
	e := grammar.IrregularEntry{Base: row.Base}
	if err := json.Unmarshal(row.PastForms, &e.PastForms); err != nil {
		return e, fmt.Errorf("irregular %q past_forms: %w", row.Base, err)
	}
	if err := json.Unmarshal(row.ParticipleForms, &e.ParticipleForms); err != nil {
		return e, fmt.Errorf("irregular %q participle_forms: %w", row.Base, err)
	}
	return e, nil
}
