package service

import (
	"context"
	"fmt"
	"time"

	"price-scout/internal/model"
	"price-scout/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// storeService implements StoreService.
type storeService struct {
	storeRepo repository.StoreRepository
	logger    zerolog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, logger zerolog.Logger) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		logger:    logger.With().Str("service", "store").Logger(),
	}
}

// GetAll retrieves the user's stores.
func (s *storeService) GetAll(ctx context.Context, userID uuid.UUID) ([]model.Store, error) {
	stores, err := s.storeRepo.GetAllForUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get stores")
		return nil, fmt.Errorf("failed to get stores: %w", err)
	}

	s.logger.Debug().Int("count", len(stores)).Msg("retrieved stores")

	return stores, nil
}

// Create creates a store owned by the user.
func (s *storeService) Create(ctx context.Context, userID uuid.UUID, req *model.StoreRequest) (*model.Store, error) {
	if req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Store name is required")
	}

	now := time.Now().UTC()
	store := &model.Store{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Location:  req.Location,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create store")
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.logger.Info().
		Str("store_id", store.ID.String()).
		Str("name", store.Name).
		Msg("store created")

	return store, nil
}

// Update updates one of the user's stores.
func (s *storeService) Update(ctx context.Context, userID, storeID uuid.UUID, req *model.StoreRequest) (*model.Store, error) {
	if req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Store name is required")
	}

	store, err := s.ownedStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	store.Name = req.Name
	store.Location = req.Location
	store.Notes = req.Notes
	store.UpdatedAt = time.Now().UTC()

	if err := s.storeRepo.Update(ctx, store); err != nil {
		s.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to update store")
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return store, nil
}

// Delete removes one of the user's stores. Its observations cascade at
// the database level.
func (s *storeService) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	if _, err := s.ownedStore(ctx, userID, storeID); err != nil {
		return err
	}

	if err := s.storeRepo.Delete(ctx, storeID); err != nil {
		s.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to delete store")
		return fmt.Errorf("failed to delete store: %w", err)
	}

	s.logger.Info().Str("store_id", storeID.String()).Msg("store deleted")

	return nil
}

// ownedStore fetches a store and verifies the user owns it.
func (s *storeService) ownedStore(ctx context.Context, userID, storeID uuid.UUID) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	if store == nil {
		return nil, model.ErrStoreNotFound
	}
	if store.UserID != userID {
		s.logger.Warn().
			Str("store_id", storeID.String()).
			Str("user_id", userID.String()).
			Msg("store access denied")
		return nil, model.ErrForbidden
	}
	return store, nil
}
