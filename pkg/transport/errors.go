package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rhuss/bote/pkg/api"
	"github.com/rhuss/bote/pkg/provider"
)

// HTTPStatusFromError maps an APIError type to the corresponding HTTP
// status code. Upstream errors carry their own status and are written by
// writeUpstreamError instead.
func HTTPStatusFromError(err *api.APIError) int {
	switch err.Type {
	case api.ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case api.ErrorTypeConfiguration, api.ErrorTypeToken, api.ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteAPIError writes an APIError as the JSON error envelope, deriving
// the HTTP status code from the error type.
func WriteAPIError(w http.ResponseWriter, apiErr *api.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatusFromError(apiErr))
	json.NewEncoder(w).Encode(apiErr)
}

// writeUpstreamError relays an upstream error: the provider's status code
// with the (possibly augmented) JSON body.
func writeUpstreamError(w http.ResponseWriter, ue *provider.UpstreamError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ue.StatusCode)
	w.Write(ue.Body)
}
