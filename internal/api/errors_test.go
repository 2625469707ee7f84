package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid goal", service.ErrInvalidGoal, http.StatusBadRequest},
		{"wrong kind", review.ErrWrongKind, http.StatusBadRequest},
		{"insufficient points", service.ErrInsufficientPoints, http.StatusBadRequest},
		{"item not found", store.ErrItemNotFound, http.StatusNotFound},
		{"learner not found", fmt.Errorf("load: %w", store.ErrProgressNotFound), http.StatusNotFound},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"storage down", fmt.Errorf("%w: %w", domain.ErrDataUnavailable, errors.New("conn refused")), http.StatusServiceUnavailable},
		{"service error", service.NewServiceError("item", "CaptureItem", store.ErrItemNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not owned", service.ErrNotOwned, "You do not own this item"},
		{"item not found", store.ErrItemNotFound, "Item not found"},
		{"learner not found", store.ErrProgressNotFound, "Learner not found"},
		{"other not found", domain.ErrNotFound, "Resource not found"},
		{"insufficient points", service.ErrInsufficientPoints, "Not enough points for a streak freeze"},
		{"freeze limit", service.ErrFreezeLimit, "Streak freeze limit reached"},
		{"goal", service.ErrInvalidGoal, "Daily goal must be between 1 and 1000"},
		{"quality", fmt.Errorf("%w: %w", domain.ErrValidation, srs.ErrInvalidQuality), "Quality must be between 0 and 5"},
		{"wrong kind", review.ErrWrongKind, "Review type does not match the item kind"},
		{"generic validation", domain.ErrValidation, "Invalid request"},
		{"unavailable", domain.ErrDataUnavailable, "Service temporarily unavailable"},
		{"unknown", errors.New("pq: relation items does not exist"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("classified error ignores fallback", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

		HandleAPIError(rr, req, store.ErrProgressNotFound, "Failed to load dashboard")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Learner not found")
	})

	t.Run("unclassified error uses fallback", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

		HandleAPIError(rr, req, errors.New("secret internal detail"), "Failed to load dashboard")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to load dashboard")
		assert.NotContains(t, rr.Body.String(), "secret internal detail")
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "required",
			err:  errors.New("Key: 'CaptureItemRequest.Term' Error:Field validation for 'Term' failed on the 'required' tag"),
			want: "Invalid Term: required field",
		},
		{
			name: "max",
			err:  errors.New("Key: 'ReviewRequest.Quality' Error:Field validation for 'Quality' failed on the 'max' tag"),
			want: "Invalid Quality: too large",
		},
		{
			name: "oneof",
			err:  errors.New("Key: 'CaptureItemRequest.Kind' Error:Field validation for 'Kind' failed on the 'oneof' tag"),
			want: "Invalid Kind: invalid value",
		},
		{
			name: "unknown format",
			err:  errors.New("something else"),
			want: "Validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeValidationError(tt.err))
		})
	}
}
