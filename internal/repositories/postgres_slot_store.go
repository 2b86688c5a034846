package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "fdweb/internal/models/db_models"
)

type postgresSlotStore struct {
	db *gorm.DB
}

func NewPostgresSlotStore(db *gorm.DB) SlotStore {
	return &postgresSlotStore{db: db}
}

func (r *postgresSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var slot dbm.KVSlot
	err := r.db.WithContext(ctx).Where("key = ?", key).Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "postgres: get slot %s", key)
	}
	return slot.Value, true, nil
}

func (r *postgresSlotStore) Set(ctx context.Context, key, value string) error {
	if err := upsertSlot(r.db.WithContext(ctx), key, value); err != nil {
		return eris.Wrapf(err, "postgres: set slot %s", key)
	}
	return nil
}

func (r *postgresSlotStore) SetMany(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := upsertSlot(tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return eris.Wrap(err, "postgres: set slots")
	}
	return nil
}

func (r *postgresSlotStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return eris.Wrap(err, "postgres: close")
	}
	return sqlDB.Close()
}

func upsertSlot(db *gorm.DB, key, value string) error {
	slot := dbm.KVSlot{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}
