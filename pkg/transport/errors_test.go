package transport

import (
	"net/http"
	"testing"

	"github.com/rhuss/bote/pkg/api"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		err  *api.APIError
		want int
	}{
		{api.NewInvalidRequestError("x"), http.StatusBadRequest},
		{api.NewConfigurationError("x"), http.StatusInternalServerError},
		{api.NewTokenError("x"), http.StatusInternalServerError},
		{api.NewInternalError("x"), http.StatusInternalServerError},
		{&api.APIError{Type: "unknown"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatusFromError(tt.err); got != tt.want {
			t.Errorf("HTTPStatusFromError(%s) = %d, want %d", tt.err.Type, got, tt.want)
		}
	}
}
