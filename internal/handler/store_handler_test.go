package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"price-scout/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStoreService is a mock implementation of StoreService.
type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) GetAll(ctx context.Context, userID uuid.UUID) ([]model.Store, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Store), args.Error(1)
}

func (m *MockStoreService) Create(ctx context.Context, userID uuid.UUID, req *model.StoreRequest) (*model.Store, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) Update(ctx context.Context, userID, storeID uuid.UUID, req *model.StoreRequest) (*model.Store, error) {
	args := m.Called(ctx, userID, storeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	args := m.Called(ctx, userID, storeID)
	return args.Error(0)
}

func TestStoreHandler_Collection(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("GET returns the user's stores", func(t *testing.T) {
		mockSvc := new(MockStoreService)
		h := NewStoreHandler(mockSvc, logger)

		expected := []model.Store{{ID: uuid.New(), Name: "Corner Market"}}
		mockSvc.On("GetAll", mock.Anything, userID).Return(expected, nil)

		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodGet, "/api/stores", nil, userID))

		assert.Equal(t, http.StatusOK, rec.Code)

		var stores []model.Store
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stores))
		assert.Len(t, stores, 1)
	})

	t.Run("POST creates a store", func(t *testing.T) {
		mockSvc := new(MockStoreService)
		h := NewStoreHandler(mockSvc, logger)

		created := &model.Store{ID: uuid.New(), Name: "Corner Market"}
		mockSvc.On("Create", mock.Anything, userID, mock.MatchedBy(func(r *model.StoreRequest) bool {
			return r.Name == "Corner Market"
		})).Return(created, nil)

		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodPost, "/api/stores", model.StoreRequest{Name: "Corner Market"}, userID))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("POST with invalid body", func(t *testing.T) {
		h := NewStoreHandler(new(MockStoreService), logger)

		req := authedRequest(t, http.MethodPost, "/api/stores", nil, userID)
		rec := httptest.NewRecorder()
		h.Collection(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, model.ErrCodeInvalidJSON, decodeError(t, rec).Error)
	})
}

func TestStoreHandler_ByID(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	storeID := uuid.New()

	t.Run("PUT updates a store", func(t *testing.T) {
		mockSvc := new(MockStoreService)
		h := NewStoreHandler(mockSvc, logger)

		updated := &model.Store{ID: storeID, Name: "Corner Market East"}
		mockSvc.On("Update", mock.Anything, userID, storeID, mock.Anything).Return(updated, nil)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodPut, "/api/stores/"+storeID.String(), model.StoreRequest{Name: "Corner Market East"}, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("DELETE removes a store", func(t *testing.T) {
		mockSvc := new(MockStoreService)
		h := NewStoreHandler(mockSvc, logger)

		mockSvc.On("Delete", mock.Anything, userID, storeID).Return(nil)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodDelete, "/api/stores/"+storeID.String(), nil, userID))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown store maps to 404", func(t *testing.T) {
		mockSvc := new(MockStoreService)
		h := NewStoreHandler(mockSvc, logger)

		mockSvc.On("Delete", mock.Anything, userID, storeID).Return(model.ErrStoreNotFound)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodDelete, "/api/stores/"+storeID.String(), nil, userID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("another user's store maps to 403", func(t *testing.T) {
		mockSvc := new(MockStoreService)
		h := NewStoreHandler(mockSvc, logger)

		mockSvc.On("Delete", mock.Anything, userID, storeID).Return(model.ErrForbidden)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodDelete, "/api/stores/"+storeID.String(), nil, userID))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid store ID", func(t *testing.T) {
		h := NewStoreHandler(new(MockStoreService), logger)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodDelete, "/api/stores/not-a-uuid", nil, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
