package gemini

import (
	"encoding/json"
	"net/http"

	"github.com/rhuss/bote/pkg/debug"
	"github.com/rhuss/bote/pkg/provider"
)

// permissionHint is appended to HTTP 403 upstream bodies. Permission-denied
// responses from the Generative-Language API are notoriously unhelpful
// about which of the usual suspects is at fault.
const permissionHint = "permission denied by the upstream API: check that the " +
	"Generative Language API is enabled for the project and that the " +
	"credential has access to the requested model"

// mapHTTPError converts a non-2xx upstream response into an UpstreamError
// that relays the upstream status code and its parsed JSON body, augmented
// with a diagnostic hint for permission-denied responses. A body that is
// not JSON is wrapped into an error envelope instead of being relayed raw.
func mapHTTPError(status int, body []byte) *provider.UpstreamError {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		parsed = map[string]any{
			"error":  "upstream_error",
			"detail": debug.Truncate(string(body), 512),
		}
	}

	if status == http.StatusForbidden {
		parsed["hint"] = permissionHint
	}

	out, err := json.Marshal(parsed)
	if err != nil {
		out = body
	}

	return &provider.UpstreamError{StatusCode: status, Body: out}
}
