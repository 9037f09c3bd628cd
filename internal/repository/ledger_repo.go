package repository

import (
	"context"
	"time"

	"github.com/roamly/discovery-service/internal/models"
	"gorm.io/gorm"
)

// LedgerRepository reads point-in-time capacity snapshots. Entries only exist
// once a booking attempt has been made; callers treat a missing row as an
// empty ledger.
type LedgerRepository interface {
	FindFutureByTours(ctx context.Context, tourIDs []uint, after time.Time) ([]models.CapacityLedger, error)
	FindByTourAndDate(ctx context.Context, tourID uint, day time.Time) (*models.CapacityLedger, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) FindFutureByTours(ctx context.Context, tourIDs []uint, after time.Time) ([]models.CapacityLedger, error) {
	if len(tourIDs) == 0 {
		return nil, nil
	}
	var ledgers []models.CapacityLedger
	err := r.db.WithContext(ctx).
		Where("tour_id IN ? AND starts_at > ?", tourIDs, after).
		Order("tour_id ASC, starts_at ASC").
		Find(&ledgers).Error
	if err != nil {
		return nil, err
	}
	return ledgers, nil
}

// FindByTourAndDate returns the ledger for the start time falling on the
// given calendar day (UTC).
func (r *ledgerRepository) FindByTourAndDate(ctx context.Context, tourID uint, day time.Time) (*models.CapacityLedger, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var ledger models.CapacityLedger
	err := r.db.WithContext(ctx).
		Where("tour_id = ? AND starts_at >= ? AND starts_at < ?", tourID, dayStart, dayEnd).
		Order("starts_at ASC").
		First(&ledger).Error
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}
