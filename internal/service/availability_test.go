package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roamly/discovery-service/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock repositories ---

type mockTourRepo struct {
	findByIDFn      func(ctx context.Context, id uint) (*models.Tour, error)
	findPublishedFn func(ctx context.Context) ([]models.Tour, error)
}

func (m *mockTourRepo) FindByID(ctx context.Context, id uint) (*models.Tour, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTourRepo) FindPublished(ctx context.Context) ([]models.Tour, error) {
	return m.findPublishedFn(ctx)
}

type mockLedgerRepo struct {
	futureFn func(ctx context.Context, tourIDs []uint, after time.Time) ([]models.CapacityLedger, error)
	byDateFn func(ctx context.Context, tourID uint, day time.Time) (*models.CapacityLedger, error)
}

func (m *mockLedgerRepo) FindFutureByTours(ctx context.Context, tourIDs []uint, after time.Time) ([]models.CapacityLedger, error) {
	return m.futureFn(ctx, tourIDs, after)
}
func (m *mockLedgerRepo) FindByTourAndDate(ctx context.Context, tourID uint, day time.Time) (*models.CapacityLedger, error) {
	return m.byDateFn(ctx, tourID, day)
}

// --- Tests ---

func fixedDate() time.Time {
	return time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
}

func availabilityFixture(confirmed int) (*mockTourRepo, *mockLedgerRepo) {
	tours := &mockTourRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Tour, error) {
			return &models.Tour{ID: id, MinGroup: 2, MaxGroup: 12, Status: models.StatusPublished}, nil
		},
	}
	ledgers := &mockLedgerRepo{
		byDateFn: func(ctx context.Context, tourID uint, day time.Time) (*models.CapacityLedger, error) {
			return &models.CapacityLedger{TourID: tourID, ConfirmedBookings: confirmed}, nil
		},
	}
	return tours, ledgers
}

// maxGroup=12, confirmed=9: three spots. A party of 3 fits, a party of 4
// does not.
func TestCheckAvailability_PartyFitsExactly(t *testing.T) {
	tours, ledgers := availabilityFixture(9)
	svc := NewAvailabilityService(tours, ledgers, false)

	got, err := svc.CheckAvailability(context.Background(), 7, 3, fixedDate())
	assert.NoError(t, err)
	assert.Equal(t, 3, got.AvailableSpots)
	assert.True(t, got.IsAvailable)
	assert.Equal(t, 2, got.MinGroup)
	assert.Equal(t, 12, got.MaxGroup)

	got, err = svc.CheckAvailability(context.Background(), 7, 4, fixedDate())
	assert.NoError(t, err)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, 4, got.RequestedHeadcount)
}

func TestCheckAvailability_NonPositiveHeadcount(t *testing.T) {
	tours, ledgers := availabilityFixture(0)
	svc := NewAvailabilityService(tours, ledgers, false)

	_, err := svc.CheckAvailability(context.Background(), 7, 0, fixedDate())
	assert.ErrorIs(t, err, ErrInvalidHeadcount)

	_, err = svc.CheckAvailability(context.Background(), 7, -2, fixedDate())
	assert.ErrorIs(t, err, ErrInvalidHeadcount)
}

func TestCheckAvailability_UnknownTour(t *testing.T) {
	tours := &mockTourRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Tour, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewAvailabilityService(tours, &mockLedgerRepo{}, false)

	_, err := svc.CheckAvailability(context.Background(), 999, 2, fixedDate())
	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestCheckAvailability_CatalogFailure(t *testing.T) {
	tours := &mockTourRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Tour, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAvailabilityService(tours, &mockLedgerRepo{}, false)

	_, err := svc.CheckAvailability(context.Background(), 7, 2, fixedDate())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

// No ledger row yet means nothing is booked for that date.
func TestCheckAvailability_MissingLedgerIsEmpty(t *testing.T) {
	tours, _ := availabilityFixture(0)
	ledgers := &mockLedgerRepo{
		byDateFn: func(ctx context.Context, tourID uint, day time.Time) (*models.CapacityLedger, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewAvailabilityService(tours, ledgers, false)

	got, err := svc.CheckAvailability(context.Background(), 7, 5, fixedDate())
	assert.NoError(t, err)
	assert.Equal(t, 12, got.AvailableSpots)
	assert.True(t, got.IsAvailable)
}

func TestCheckAvailability_OverbookedLedgerClampsToZero(t *testing.T) {
	tours, ledgers := availabilityFixture(15)
	svc := NewAvailabilityService(tours, ledgers, false)

	got, err := svc.CheckAvailability(context.Background(), 7, 1, fixedDate())
	assert.NoError(t, err)
	assert.Equal(t, 0, got.AvailableSpots)
	assert.False(t, got.IsAvailable)
}

// The min-group gate is a policy switch, off by default.
func TestCheckAvailability_MinGroupPolicy(t *testing.T) {
	tours, ledgers := availabilityFixture(0)

	relaxed := NewAvailabilityService(tours, ledgers, false)
	got, err := relaxed.CheckAvailability(context.Background(), 7, 1, fixedDate())
	assert.NoError(t, err)
	assert.True(t, got.IsAvailable)

	strict := NewAvailabilityService(tours, ledgers, true)
	_, err = strict.CheckAvailability(context.Background(), 7, 1, fixedDate())
	assert.ErrorIs(t, err, ErrHeadcountBelowMinimum)
}
