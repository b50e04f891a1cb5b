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

// MockObservationService is a mock implementation of ObservationService.
type MockObservationService struct {
	mock.Mock
}

func (m *MockObservationService) GetAll(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]model.Observation, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Observation), args.Error(1)
}

func (m *MockObservationService) GetCheapest(ctx context.Context, userID, categoryID uuid.UUID) (*model.Observation, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Observation), args.Error(1)
}

func (m *MockObservationService) Create(ctx context.Context, userID uuid.UUID, req *model.ObservationRequest) (*model.Observation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Observation), args.Error(1)
}

func (m *MockObservationService) Update(ctx context.Context, userID, observationID uuid.UUID, req *model.ObservationRequest) (*model.Observation, error) {
	args := m.Called(ctx, userID, observationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Observation), args.Error(1)
}

func (m *MockObservationService) Delete(ctx context.Context, userID, observationID uuid.UUID) error {
	args := m.Called(ctx, userID, observationID)
	return args.Error(0)
}

func TestObservationHandler_Collection(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("GET without filter lists everything", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		expected := []model.Observation{{ID: uuid.New(), Unit: "m", UnitPrice: 5.00}}
		mockSvc.On("GetAll", mock.Anything, userID, (*uuid.UUID)(nil)).Return(expected, nil)

		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodGet, "/api/observations", nil, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("GET with category filter", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		categoryID := uuid.New()
		mockSvc.On("GetAll", mock.Anything, userID, mock.MatchedBy(func(id *uuid.UUID) bool {
			return id != nil && *id == categoryID
		})).Return([]model.Observation{}, nil)

		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodGet, "/api/observations?category="+categoryID.String(), nil, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("GET with malformed category filter", func(t *testing.T) {
		h := NewObservationHandler(new(MockObservationService), logger)

		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodGet, "/api/observations?category=nope", nil, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("POST creates an observation", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		created := &model.Observation{ID: uuid.New(), Unit: "m", UnitPrice: 5.00}
		mockSvc.On("Create", mock.Anything, userID, mock.Anything).Return(created, nil)

		body := model.ObservationRequest{
			StoreID:    uuid.New(),
			CategoryID: uuid.New(),
			Quantity:   30,
			Unit:       "m",
			PackCount:  1,
			Price:      150,
		}
		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodPost, "/api/observations", body, userID))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("POST maps a disallowed unit to 400", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		mockSvc.On("Create", mock.Anything, userID, mock.Anything).Return(nil, model.ErrUnitNotAllowed)

		body := model.ObservationRequest{StoreID: uuid.New(), CategoryID: uuid.New(), Quantity: 1, Unit: "kg", PackCount: 1, Price: 1}
		rec := httptest.NewRecorder()
		h.Collection(rec, authedRequest(t, http.MethodPost, "/api/observations", body, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, model.ErrCodeUnitNotAllowed, decodeError(t, rec).Error)
	})
}

func TestObservationHandler_Cheapest(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("returns the cheapest observation", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		cheapest := &model.Observation{ID: uuid.New(), CategoryID: categoryID, UnitPrice: 5.00}
		mockSvc.On("GetCheapest", mock.Anything, userID, categoryID).Return(cheapest, nil)

		rec := httptest.NewRecorder()
		h.Cheapest(rec, authedRequest(t, http.MethodGet, "/api/observations/cheapest?category="+categoryID.String(), nil, userID))

		assert.Equal(t, http.StatusOK, rec.Code)

		var observation model.Observation
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&observation))
		assert.Equal(t, 5.00, observation.UnitPrice)
	})

	t.Run("204 when nothing is computable yet", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		mockSvc.On("GetCheapest", mock.Anything, userID, categoryID).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.Cheapest(rec, authedRequest(t, http.MethodGet, "/api/observations/cheapest?category="+categoryID.String(), nil, userID))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing category parameter", func(t *testing.T) {
		h := NewObservationHandler(new(MockObservationService), logger)

		rec := httptest.NewRecorder()
		h.Cheapest(rec, authedRequest(t, http.MethodGet, "/api/observations/cheapest", nil, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestObservationHandler_ByID(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	observationID := uuid.New()

	t.Run("PUT updates an observation", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		updated := &model.Observation{ID: observationID, Unit: "m", UnitPrice: 2.50}
		mockSvc.On("Update", mock.Anything, userID, observationID, mock.Anything).Return(updated, nil)

		body := model.ObservationRequest{StoreID: uuid.New(), CategoryID: uuid.New(), Quantity: 60, Unit: "m", PackCount: 1, Price: 150}
		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodPut, "/api/observations/"+observationID.String(), body, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("DELETE removes an observation", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		mockSvc.On("Delete", mock.Anything, userID, observationID).Return(nil)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodDelete, "/api/observations/"+observationID.String(), nil, userID))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown observation maps to 404", func(t *testing.T) {
		mockSvc := new(MockObservationService)
		h := NewObservationHandler(mockSvc, logger)

		mockSvc.On("Delete", mock.Anything, userID, observationID).Return(model.ErrObservationNotFound)

		rec := httptest.NewRecorder()
		h.ByID(rec, authedRequest(t, http.MethodDelete, "/api/observations/"+observationID.String(), nil, userID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
