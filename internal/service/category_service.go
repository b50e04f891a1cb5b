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

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves the global categories plus the user's custom categories.
func (s *categoryService) GetAll(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAllForUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")

	return categories, nil
}

// Create creates a custom category owned by the user. The default unit
// and every allowed unit must belong to the recognised unit enumeration,
// and the default must itself be allowed.
func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	if req.Value == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Category value is required")
	}
	if req.Label == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Category label is required")
	}
	if req.DefaultUnit == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Category default unit is required")
	}

	allowedUnits := req.AllowedUnits
	if len(allowedUnits) == 0 {
		allowedUnits = []string{req.DefaultUnit}
	}
	if err := validateUnits(allowedUnits); err != nil {
		return nil, err
	}
	if !pricing.KnownUnit(req.DefaultUnit) {
		return nil, model.ErrUnknownUnit
	}

	category := &model.Category{
		ID:           uuid.New(),
		Value:        req.Value,
		Label:        req.Label,
		DefaultUnit:  req.DefaultUnit,
		AllowedUnits: allowedUnits,
		UserID:       &userID,
		CreatedAt:    time.Now().UTC(),
	}
	if !category.AllowsUnit(category.DefaultUnit) {
		return nil, model.ErrUnitNotAllowed
	}

	existing, err := s.categoryRepo.GetByValue(ctx, userID, req.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to check category value: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("value", req.Value).Msg("category value already in use")
		return nil, model.ErrDuplicateCategory
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("value", req.Value).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Str("category_id", category.ID.String()).
		Str("value", category.Value).
		Msg("category created")

	return category, nil
}

// ExtendUnits adds units to a custom category's allowed unit set.
// Global categories are fixed by the seed catalog, and users cannot
// touch each other's custom categories.
func (s *categoryService) ExtendUnits(ctx context.Context, userID, categoryID uuid.UUID, req *model.UnitExtensionRequest) (*model.Category, error) {
	if len(req.Units) == 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "At least one unit is required")
	}
	if err := validateUnits(req.Units); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	if category.IsGlobal() {
		return nil, model.ErrCategoryNotEditable
	}
	if *category.UserID != userID {
		return nil, model.ErrForbidden
	}

	// Merge preserving order so existing units keep their positions.
	merged := append([]string(nil), category.AllowedUnits...)
	for _, unit := range req.Units {
		if !containsUnit(merged, unit) {
			merged = append(merged, unit)
		}
	}

	if err := s.categoryRepo.UpdateAllowedUnits(ctx, categoryID, merged); err != nil {
		s.logger.Error().Err(err).Str("category_id", categoryID.String()).Msg("failed to extend category units")
		return nil, fmt.Errorf("failed to extend category units: %w", err)
	}

	s.logger.Info().
		Str("category_id", categoryID.String()).
		Strs("allowed_units", merged).
		Msg("category units extended")

	category.AllowedUnits = merged
	return category, nil
}

func containsUnit(units []string, unit string) bool {
	for _, u := range units {
		if u == unit {
			return true
		}
	}
	return false
}

// validateUnits checks every unit against the recognised unit enumeration.
func validateUnits(units []string) error {
	for _, unit := range units {
		if !pricing.KnownUnit(unit) {
			return model.NewDomainError(model.ErrCodeUnknownUnit,
				fmt.Sprintf("Unit %q is not a recognised measurement unit", unit))
		}
	}
	return nil
}
