package repository

import (
	"context"

	"github.com/roamly/discovery-service/internal/models"
	"gorm.io/gorm"
)

// TourRepository reads the mirrored tour catalog. Discovery never writes
// through it; the catalog-sync consumer owns all writes to the read model.
type TourRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Tour, error)
	FindPublished(ctx context.Context) ([]models.Tour, error)
}

type tourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) FindByID(ctx context.Context, id uint) (*models.Tour, error) {
	var tour models.Tour
	err := r.db.WithContext(ctx).
		Preload("StartTimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("starts_at ASC")
		}).
		First(&tour, id).Error
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) FindPublished(ctx context.Context) ([]models.Tour, error) {
	var tours []models.Tour
	err := r.db.WithContext(ctx).
		Preload("StartTimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("starts_at ASC")
		}).
		Where("status = ?", models.StatusPublished).
		Order("id ASC").
		Find(&tours).Error
	if err != nil {
		return nil, err
	}
	return tours, nil
}
