// Package iostore implements species.Store on GORM.
package iostore

import (
	"context"
	"errors"
	"time"

	"github.com/gnames/gnfish/internal/ioschema"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/schema"
	"github.com/gnames/gnfish/pkg/species"
	"gorm.io/gorm"
)

type store struct {
	db  *ioschema.DB
	now func() time.Time
}

// New opens the species store configured in cfg.Store.
func New(ctx context.Context, cfg *config.Config) (species.Store, error) {
	db, err := ioschema.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &store{db: db, now: time.Now}, nil
}

// FindByCommonOrScientificName implements species.Store.
func (s *store) FindByCommonOrScientificName(
	ctx context.Context,
	name string,
) (*species.Record, error) {
	key := schema.Key(name)
	if key == "" {
		return nil, nil
	}

	var rows []schema.Species
	err := s.db.Gorm.WithContext(ctx).
		Where("common_key = ? OR scientific_key = ?", key, key).
		Order("created_at").
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, QueryError(name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// a common name match wins over a scientific one
	row := rows[0]
	for _, v := range rows {
		if v.CommonKey == key {
			row = v
			break
		}
	}
	res := row.Record()
	return &res, nil
}

// Upsert implements species.Store.
func (s *store) Upsert(
	ctx context.Context,
	rec species.Record,
) (species.Record, species.Action, error) {
	row := schema.FromRecord(rec)
	if row.CommonKey == "" || row.ScientificKey == "" {
		return rec, species.ActionNone,
			UpsertError(rec.CommonName, errors.New("empty name"))
	}

	res, action, err := s.upsert(ctx, row)
	if err != nil && action == species.ActionInserted {
		// a concurrent insert of the same species won, update its row
		res, action, err = s.upsert(ctx, row)
	}
	if err != nil {
		return rec, species.ActionNone, UpsertError(rec.CommonName, err)
	}
	return res.Record(), action, nil
}

func (s *store) upsert(
	ctx context.Context,
	row schema.Species,
) (schema.Species, species.Action, error) {
	now := s.now().UTC().Truncate(time.Microsecond)
	row.UpdatedAt = now

	var action species.Action
	err := s.db.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var matches []schema.Species
		err := tx.
			Where("common_key = ? OR scientific_key = ?",
				row.CommonKey, row.ScientificKey).
			Find(&matches).Error
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			action = species.ActionInserted
			if row.ID == "" {
				row.ID = species.RecordID(row.ScientificName)
			}
			row.CreatedAt = now
			return tx.Create(&row).Error
		}

		action = species.ActionUpdated
		target := pickTarget(matches, row)
		cols := row.UpdateColumns()
		if target.CommonKey != row.CommonKey && commonTaken(matches, target, row) {
			// another species already owns the common name
			delete(cols, "common_name")
			delete(cols, "common_key")
		}
		if target.ScientificKey != row.ScientificKey &&
			scientificTaken(matches, target, row) {
			delete(cols, "scientific_name")
			delete(cols, "scientific_key")
		}

		err = tx.Model(&schema.Species{}).
			Where("id = ?", target.ID).
			Updates(cols).Error
		if err != nil {
			return err
		}
		var stored schema.Species
		if err = tx.Where("id = ?", target.ID).Take(&stored).Error; err != nil {
			return err
		}
		row = stored
		return nil
	})
	return row, action, err
}

// pickTarget chooses the row to update. A match by scientific name is
// preferred because it describes the same species.
func pickTarget(matches []schema.Species, row schema.Species) schema.Species {
	for _, v := range matches {
		if v.ScientificKey == row.ScientificKey {
			return v
		}
	}
	return matches[0]
}

func commonTaken(matches []schema.Species, target, row schema.Species) bool {
	for _, v := range matches {
		if v.ID != target.ID && v.CommonKey == row.CommonKey {
			return true
		}
	}
	return false
}

func scientificTaken(matches []schema.Species, target, row schema.Species) bool {
	for _, v := range matches {
		if v.ID != target.ID && v.ScientificKey == row.ScientificKey {
			return true
		}
	}
	return false
}

// ListAll implements species.Store.
func (s *store) ListAll(ctx context.Context) ([]species.Record, error) {
	var rows []schema.Species
	err := s.db.Gorm.WithContext(ctx).
		Order("common_key").
		Find(&rows).Error
	if err != nil {
		return nil, QueryError("*", err)
	}

	res := make([]species.Record, len(rows))
	for i := range rows {
		res[i] = rows[i].Record()
	}
	return res, nil
}

// Count implements species.Store.
func (s *store) Count(ctx context.Context) (int64, error) {
	var res int64
	err := s.db.Gorm.WithContext(ctx).
		Model(&schema.Species{}).
		Count(&res).Error
	if err != nil {
		return 0, QueryError("count", err)
	}
	return res, nil
}

// Close implements species.Store.
func (s *store) Close() error {
	return s.db.Close()
}
