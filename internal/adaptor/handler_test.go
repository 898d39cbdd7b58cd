package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
)

func TestHandleServiceError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", fmt.Errorf("%w: name is required", utils.ErrValidation), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: bad password", utils.ErrUnauthorized), http.StatusUnauthorized},
		{"not found", fmt.Errorf("hall x: %w", utils.ErrNotFound), http.StatusNotFound},
		{"sync", fmt.Errorf("push sales: %w", utils.ErrSync), http.StatusBadGateway},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestHandleServiceError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), errors.New("pq: password authentication failed"), "test")

	if body := rec.Body.String(); body == "" || strings.Contains(body, "password") {
		t.Fatalf("expected a generic message, got %s", body)
	}
}
