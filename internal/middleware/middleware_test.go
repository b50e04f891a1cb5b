package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"price-scout/internal/auth"
	"price-scout/internal/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestBearerAuth(t *testing.T) {
	verifier := auth.NewVerifier(testSecret)
	userID := uuid.New()

	var gotSession *auth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, _ = auth.SessionFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := BearerAuth(verifier, zerolog.Nop())(next)

	tests := []struct {
		name           string
		path           string
		authorization  string
		expectedStatus int
		expectSession  bool
	}{
		{
			name:           "valid token passes and installs session",
			path:           "/api/stores",
			authorization:  bearerToken(t, userID),
			expectedStatus: http.StatusOK,
			expectSession:  true,
		},
		{
			name:           "missing header is rejected",
			path:           "/api/stores",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header is rejected",
			path:           "/api/stores",
			authorization:  "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token is rejected",
			path:           "/api/stores",
			authorization:  "Bearer garbage",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "health endpoint is open",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics endpoint is open",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSession = nil

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectSession {
				require.NotNil(t, gotSession)
				assert.Equal(t, userID, gotSession.UserID)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(next)

	t.Run("adds headers to normal requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight requests directly", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/stores", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRecovery(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := Recovery(zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}

func TestInstrument(t *testing.T) {
	m := metrics.New()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler := Instrument(m)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/stores", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMetricPath(t *testing.T) {
	id := uuid.New().String()

	assert.Equal(t, "/api/stores/:id", metricPath("/api/stores/"+id))
	assert.Equal(t, "/api/stores", metricPath("/api/stores"))
	assert.Equal(t, "/api/categories/:id/units", metricPath("/api/categories/"+id+"/units"))
}
