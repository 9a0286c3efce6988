package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	domainRepo "github.com/cuatrovientos/retail-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository creates a state repository backed by the state_records table
func NewStateRepository(db *gorm.DB) domainRepo.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var record entity.StateRecord
	err := r.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(record.Value), nil
}

// SaveBatch upserts all records inside a single transaction
func (r *stateRepository) SaveBatch(ctx context.Context, records map[string][]byte) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]entity.StateRecord, 0, len(records))
	for key, value := range records {
		rows = append(rows, entity.StateRecord{Key: key, Value: string(value), UpdatedAt: now})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&rows[i]).Error
			if err != nil {
				return fmt.Errorf("failed to save %s: %w", rows[i].Key, err)
			}
		}
		return nil
	})
}

func (r *stateRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
