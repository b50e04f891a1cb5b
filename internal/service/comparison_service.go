package service

import (
	"context"
	"fmt"
	"time"

	"price-scout/internal/metrics"
	"price-scout/internal/model"
	"price-scout/internal/pricing"
	"price-scout/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// comparisonService implements ComparisonService.
type comparisonService struct {
	observationRepo repository.ObservationRepository
	comparisonRepo  repository.ComparisonRepository
	categoryRepo    repository.CategoryRepository
	comparator      *pricing.Comparator
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(
	observationRepo repository.ObservationRepository,
	comparisonRepo repository.ComparisonRepository,
	categoryRepo repository.CategoryRepository,
	comparator *pricing.Comparator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) ComparisonService {
	return &comparisonService{
		observationRepo: observationRepo,
		comparisonRepo:  comparisonRepo,
		categoryRepo:    categoryRepo,
		comparator:      comparator,
		metrics:         m,
		logger:          logger.With().Str("service", "comparison").Logger(),
	}
}

// Compare evaluates the current observation against the user's recorded
// observations. The comparator receives the full observation list and
// does its own category and eligibility filtering. A nil result (nothing
// to compare against, or the current item's unit price is not
// computable) is not an error.
func (s *comparisonService) Compare(ctx context.Context, userID uuid.UUID, req *model.CompareRequest) (*model.ComparisonResult, error) {
	if err := validateAmounts(req.Quantity, req.PackCount, req.Price); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil || (!category.IsGlobal() && *category.UserID != userID) {
		return nil, model.ErrCategoryNotFound
	}

	if req.Unit != "" && !pricing.KnownUnit(req.Unit) {
		return nil, model.ErrUnknownUnit
	}
	// The unit the user last picked may belong to a different category;
	// resolve it against the one being compared.
	unit := pricing.ResolveUnit(category, req.Unit)

	packCount := req.PackCount
	if packCount < 1 {
		packCount = 1
	}

	current := model.Observation{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       unit,
		PackCount:  packCount,
		Price:      req.Price,
		UnitPrice:  pricing.UnitPrice(req.Quantity, packCount, req.Price),
	}

	historical, err := s.observationRepo.GetAllForUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get observations for comparison")
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}

	result := s.comparator.Compare(current, historical)

	s.metrics.ComparisonsTotal.Inc()
	if result != nil && result.IsCurrentCheaper {
		s.metrics.GoodDealsTotal.Inc()
	}

	if result == nil {
		s.logger.Debug().
			Str("category_id", req.CategoryID.String()).
			Float64("current_unit_price", current.UnitPrice).
			Msg("no comparison result")
		return nil, nil
	}

	s.logger.Debug().
		Str("category_id", req.CategoryID.String()).
		Float64("current_unit_price", result.CurrentUnitPrice).
		Float64("savings_amount", result.SavingsAmount).
		Bool("is_current_cheaper", result.IsCurrentCheaper).
		Msg("comparison computed")

	if req.Save {
		if err := s.saveComparison(ctx, userID, &current, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// saveComparison records a comparison outcome in the user's history.
func (s *comparisonService) saveComparison(ctx context.Context, userID uuid.UUID, current *model.Observation, result *model.ComparisonResult) error {
	cheapestID := result.Cheapest.ID
	comparison := &model.Comparison{
		ID:               uuid.New(),
		UserID:           userID,
		CategoryID:       current.CategoryID,
		CurrentName:      current.Name,
		CurrentQuantity:  current.Quantity,
		CurrentPackCount: current.PackCount,
		CurrentPrice:     current.Price,
		CurrentUnitPrice: current.UnitPrice,
		CheapestID:       &cheapestID,
		IsCurrentCheaper: result.IsCurrentCheaper,
		SavingsAmount:    result.SavingsAmount,
		SavingsPercent:   result.SavingsPercent,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.comparisonRepo.Create(ctx, comparison); err != nil {
		s.logger.Error().Err(err).Msg("failed to save comparison")
		return fmt.Errorf("failed to save comparison: %w", err)
	}

	s.logger.Info().
		Str("comparison_id", comparison.ID.String()).
		Str("category_id", comparison.CategoryID.String()).
		Msg("comparison saved")

	return nil
}

// History retrieves the user's saved comparisons with pagination.
func (s *comparisonService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Comparison, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	comparisons, err := s.comparisonRepo.GetAllForUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get comparison history")
		return nil, fmt.Errorf("failed to get comparison history: %w", err)
	}

	s.logger.Debug().
		Int("count", len(comparisons)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved comparison history")

	return comparisons, nil
}

// Stats aggregates the user's saved comparison history.
func (s *comparisonService) Stats(ctx context.Context, userID uuid.UUID) (*model.ComparisonStats, error) {
	stats, err := s.comparisonRepo.GetStats(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get comparison stats")
		return nil, fmt.Errorf("failed to get comparison stats: %w", err)
	}

	return stats, nil
}
