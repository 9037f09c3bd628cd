package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roamly/discovery-service/internal/repository"
	"gorm.io/gorm"
)

// Availability is the non-binding bookability signal for one tour and date.
// It is computed from a snapshot and may be stale by the time the booking
// service commits; only the booking service's atomic check is authoritative.
type Availability struct {
	TourID             uint
	AvailableSpots     int
	RequestedHeadcount int
	IsAvailable        bool
	MinGroup           int
	MaxGroup           int
}

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, tourID uint, headcount int, date time.Time) (*Availability, error)
}

type availabilityService struct {
	tours   repository.TourRepository
	ledgers repository.LedgerRepository

	// enforceMinGroup additionally rejects headcounts below the tour's
	// minimum group size. Off by default.
	enforceMinGroup bool
}

func NewAvailabilityService(tours repository.TourRepository, ledgers repository.LedgerRepository, enforceMinGroup bool) AvailabilityService {
	return &availabilityService{tours: tours, ledgers: ledgers, enforceMinGroup: enforceMinGroup}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, tourID uint, headcount int, date time.Time) (*Availability, error) {
	if headcount < 1 {
		return nil, ErrInvalidHeadcount
	}

	tour, err := s.tours.FindByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if s.enforceMinGroup && headcount < tour.MinGroup {
		return nil, ErrHeadcountBelowMinimum
	}

	spots := tour.MaxGroup
	ledger, err := s.ledgers.FindByTourAndDate(ctx, tourID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		// No ledger row yet: nothing has been booked for that date.
	} else {
		spots = ledger.AvailableSpots(tour.MaxGroup)
	}

	return &Availability{
		TourID:             tour.ID,
		AvailableSpots:     spots,
		RequestedHeadcount: headcount,
		IsAvailable:        headcount <= spots,
		MinGroup:           tour.MinGroup,
		MaxGroup:           tour.MaxGroup,
	}, nil
}
