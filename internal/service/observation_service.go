package service

import (
	"context"
	"fmt"
	"time"

	"price-scout/internal/model"
	"price-scout/internal/pricing"
	"price-scout/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// observationService implements ObservationService. Every write derives
// the stored unit price through the pricing normalizer; no other place
// in the application computes one.
type observationService struct {
	observationRepo repository.ObservationRepository
	storeRepo       repository.StoreRepository
	categoryRepo    repository.CategoryRepository
	logger          zerolog.Logger
}

// NewObservationService creates a new observation service.
func NewObservationService(
	observationRepo repository.ObservationRepository,
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ObservationService {
	return &observationService{
		observationRepo: observationRepo,
		storeRepo:       storeRepo,
		categoryRepo:    categoryRepo,
		logger:          logger.With().Str("service", "observation").Logger(),
	}
}

// GetAll retrieves the user's observations, optionally filtered to one category.
func (s *observationService) GetAll(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]model.Observation, error) {
	var (
		observations []model.Observation
		err          error
	)
	if categoryID != nil {
		observations, err = s.observationRepo.GetByCategory(ctx, userID, *categoryID)
	} else {
		observations, err = s.observationRepo.GetAllForUser(ctx, userID)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get observations")
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}

	s.logger.Debug().Int("count", len(observations)).Msg("retrieved observations")

	return observations, nil
}

// GetCheapest retrieves the user's cheapest eligible observation in a category.
func (s *observationService) GetCheapest(ctx context.Context, userID, categoryID uuid.UUID) (*model.Observation, error) {
	if _, err := s.visibleCategory(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	cheapest, err := s.observationRepo.GetCheapestByCategory(ctx, userID, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", categoryID.String()).Msg("failed to get cheapest observation")
		return nil, fmt.Errorf("failed to get cheapest observation: %w", err)
	}

	return cheapest, nil
}

// Create records a new observation with its derived unit price.
func (s *observationService) Create(ctx context.Context, userID uuid.UUID, req *model.ObservationRequest) (*model.Observation, error) {
	if err := validateAmounts(req.Quantity, req.PackCount, req.Price); err != nil {
		return nil, err
	}

	category, err := s.visibleCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStore(ctx, userID, req.StoreID); err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = category.DefaultUnit
	}
	if !pricing.KnownUnit(unit) {
		return nil, model.ErrUnknownUnit
	}
	if !category.AllowsUnit(unit) {
		return nil, model.ErrUnitNotAllowed
	}

	packCount := req.PackCount
	if packCount < 1 {
		packCount = 1
	}

	now := time.Now().UTC()
	observation := &model.Observation{
		ID:         uuid.New(),
		UserID:     userID,
		StoreID:    req.StoreID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       unit,
		PackCount:  packCount,
		Price:      req.Price,
		UnitPrice:  pricing.UnitPrice(req.Quantity, packCount, req.Price),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.observationRepo.Create(ctx, observation); err != nil {
		s.logger.Error().Err(err).Msg("failed to create observation")
		return nil, fmt.Errorf("failed to create observation: %w", err)
	}

	s.logger.Info().
		Str("observation_id", observation.ID.String()).
		Str("category_id", observation.CategoryID.String()).
		Float64("unit_price", observation.UnitPrice).
		Msg("observation created")

	return observation, nil
}

// Update rewrites one of the user's observations and recomputes its unit
// price. When the category changes, the previously selected unit
// survives only if the new category still allows it.
func (s *observationService) Update(ctx context.Context, userID, observationID uuid.UUID, req *model.ObservationRequest) (*model.Observation, error) {
	if err := validateAmounts(req.Quantity, req.PackCount, req.Price); err != nil {
		return nil, err
	}

	observation, err := s.ownedObservation(ctx, userID, observationID)
	if err != nil {
		return nil, err
	}

	category, err := s.visibleCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStore(ctx, userID, req.StoreID); err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = observation.Unit
	}
	if req.CategoryID != observation.CategoryID {
		// Category switch: keep the unit only if still allowed,
		// otherwise fall back to the new category's default.
		unit = pricing.ResolveUnit(category, unit)
	} else {
		if !pricing.KnownUnit(unit) {
			return nil, model.ErrUnknownUnit
		}
		if !category.AllowsUnit(unit) {
			return nil, model.ErrUnitNotAllowed
		}
	}

	packCount := req.PackCount
	if packCount < 1 {
		packCount = 1
	}

	observation.StoreID = req.StoreID
	observation.CategoryID = req.CategoryID
	observation.Name = req.Name
	observation.Quantity = req.Quantity
	observation.Unit = unit
	observation.PackCount = packCount
	observation.Price = req.Price
	observation.UnitPrice = pricing.UnitPrice(req.Quantity, packCount, req.Price)
	observation.UpdatedAt = time.Now().UTC()

	if err := s.observationRepo.Update(ctx, observation); err != nil {
		s.logger.Error().Err(err).Str("observation_id", observationID.String()).Msg("failed to update observation")
		return nil, fmt.Errorf("failed to update observation: %w", err)
	}

	return observation, nil
}

// Delete removes one of the user's observations.
func (s *observationService) Delete(ctx context.Context, userID, observationID uuid.UUID) error {
	if _, err := s.ownedObservation(ctx, userID, observationID); err != nil {
		return err
	}

	if err := s.observationRepo.Delete(ctx, observationID); err != nil {
		s.logger.Error().Err(err).Str("observation_id", observationID.String()).Msg("failed to delete observation")
		return fmt.Errorf("failed to delete observation: %w", err)
	}

	s.logger.Info().Str("observation_id", observationID.String()).Msg("observation deleted")

	return nil
}

// ownedObservation fetches an observation and verifies the user owns it.
func (s *observationService) ownedObservation(ctx context.Context, userID, observationID uuid.UUID) (*model.Observation, error) {
	observation, err := s.observationRepo.GetByID(ctx, observationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}
	if observation == nil {
		return nil, model.ErrObservationNotFound
	}
	if observation.UserID != userID {
		s.logger.Warn().
			Str("observation_id", observationID.String()).
			Str("user_id", userID.String()).
			Msg("observation access denied")
		return nil, model.ErrForbidden
	}
	return observation, nil
}

// visibleCategory fetches a category and verifies the user can see it:
// global categories are visible to everyone, custom ones only to their
// owner. Another user's custom category is reported as not found rather
// than forbidden so its existence does not leak.
func (s *observationService) visibleCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil || (!category.IsGlobal() && *category.UserID != userID) {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// checkStore verifies the store exists and belongs to the user.
func (s *observationService) checkStore(ctx context.Context, userID, storeID uuid.UUID) error {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("failed to get store: %w", err)
	}
	if store == nil || store.UserID != userID {
		return model.ErrStoreNotFound
	}
	return nil
}

// validateAmounts rejects negative numeric input. Zero quantity or
// price is accepted and stored with the "not computable" sentinel unit
// price; a pack count below 1 later degrades to single-pack pricing.
func validateAmounts(quantity float64, packCount int, price float64) error {
	if quantity < 0 {
		return model.ErrInvalidQuantity
	}
	if packCount < 0 {
		return model.ErrInvalidPackCount
	}
	if price < 0 {
		return model.ErrInvalidPrice
	}
	return nil
}
