package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devtracker/internal/model"
)

// SlotRepository stores slots as rows of a SQLite table.
type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var record model.SlotRecord
	err := r.db.WithContext(ctx).Where(&model.SlotRecord{Key: key}).First(&record).Error
	switch {
	case err == nil:
		return record.Value, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find slot: %w", err)
	}
}

func (r *SlotRepository) Save(ctx context.Context, key string, value []byte) error {
	record := model.SlotRecord{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
