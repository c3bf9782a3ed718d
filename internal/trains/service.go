package trains

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatra/internal/shared/apperror"
	"yatra/internal/shared/constants"
	"yatra/pkg/cache"
)

// Service exposes train search and the availability query the booking
// workflow gates on.
type Service interface {
	Search(ctx context.Context, req SearchRequest) ([]Train, error)
	GetTrain(ctx context.Context, trainNumber string) (*Train, error)

	// CheckAvailability is a pure query. It must return Available=true
	// before any booking record may be created for the tuple.
	CheckAvailability(ctx context.Context, trainID, classCode, date string) (*Availability, error)
}

type service struct {
	catalog       Catalog
	cacheService  cache.Service
	cacheTTL      time.Duration
	searchTimeout time.Duration
}

// NewService creates a train service. cacheService may be nil, in which case
// search results are fetched from the catalog on every call.
func NewService(catalog Catalog, cacheService cache.Service, cacheTTL, searchTimeout time.Duration) Service {
	return &service{
		catalog:       catalog,
		cacheService:  cacheService,
		cacheTTL:      cacheTTL,
		searchTimeout: searchTimeout,
	}
}

func (s *service) Search(ctx context.Context, req SearchRequest) ([]Train, error) {
	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	if s.cacheService != nil {
		var cached []Train
		key := searchCacheKey(req)
		err := s.cacheService.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
			return s.fetch(ctx, req)
		}, &cached)
		if err == nil {
			return cached, nil
		}
		// A cache-layer fault falls through to the source; a source fault is
		// surfaced as SearchUnavailable by fetch below.
	}

	return s.fetch(ctx, req)
}

func (s *service) fetch(ctx context.Context, req SearchRequest) ([]Train, error) {
	trains, err := s.catalog.FindByRoute(ctx, req.From, req.To, req.JourneyDate)
	if err != nil {
		// Never return partial or stale data: an empty set plus the error.
		return []Train{}, fmt.Errorf("train search: %w: %v", apperror.ErrSearchUnavailable, err)
	}
	return trains, nil
}

func (s *service) GetTrain(ctx context.Context, trainNumber string) (*Train, error) {
	if s.cacheService != nil {
		var cached Train
		key := constants.TrainDetailsKey(trainNumber)
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_TRAIN_DETAILS, func() (interface{}, error) {
			return s.lookupTrain(ctx, trainNumber)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		// Cache-layer faults fall through to the source.
	}

	return s.lookupTrain(ctx, trainNumber)
}

func (s *service) lookupTrain(ctx context.Context, trainNumber string) (*Train, error) {
	train, found, err := s.catalog.GetByNumber(ctx, trainNumber)
	if err != nil {
		return nil, fmt.Errorf("train lookup: %w: %v", apperror.ErrDependencyUnavailable, err)
	}
	if !found {
		return nil, fmt.Errorf("train %s: %w", trainNumber, apperror.ErrNotFound)
	}
	return train, nil
}

func (s *service) CheckAvailability(ctx context.Context, trainID, classCode, date string) (*Availability, error) {
	train, found, err := s.catalog.GetByID(ctx, trainID)
	if err != nil {
		return nil, fmt.Errorf("availability check: %w: %v", apperror.ErrDependencyUnavailable, err)
	}
	if !found {
		return &Availability{Available: false}, nil
	}

	inv, ok := train.Classes[classCode]
	if !ok {
		return &Availability{Available: false}, nil
	}

	avail := &Availability{
		Available: inv.Bookable(),
		SeatsLeft: inv.SeatsAvailable,
		Fare:      inv.Price,
	}
	if inv.WaitlistCount != nil {
		avail.WaitlistCount = *inv.WaitlistCount
	}
	return avail, nil
}

func searchCacheKey(req SearchRequest) string {
	return constants.SearchResultsKey(req.From, req.To, req.JourneyDate, req.Class, req.Quota)
}
