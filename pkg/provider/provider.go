package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/rhuss/bote/pkg/api"
)

// Provider abstracts an upstream LLM endpoint. Each adapter handles its own
// wire protocol internally: the Groq adapter relays OpenAI-compatible
// bodies verbatim, the Gemini adapter maps between schemas.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier ("groq" or "gemini").
	Name() string

	// Capabilities returns what this provider supports.
	Capabilities() Capabilities

	// Chat forwards a single chat request to the upstream and returns the
	// outcome. Upstream protocol errors on the relay path are returned as
	// a Result carrying the upstream status; mapped errors are returned
	// as *api.APIError or *UpstreamError.
	Chat(ctx context.Context, req *api.ChatRequest) (*Result, error)

	// Status reports credential and model state for the health endpoint.
	Status() Status

	// Close releases provider resources (HTTP connections).
	Close() error
}

// Capabilities declares optional features an adapter supports.
type Capabilities struct {
	// Streaming indicates the adapter can relay incremental output.
	Streaming bool
}

// ValidateCapabilities checks whether the given request is compatible with
// the provider's declared capabilities. Returns an APIError identifying
// the unsupported feature, or nil if the request is compatible.
func ValidateCapabilities(caps Capabilities, req *api.ChatRequest) *api.APIError {
	if req.Stream && !caps.Streaming {
		return api.NewInvalidRequestError(
			"the configured provider does not support streaming responses")
	}
	return nil
}

// Status reports per-provider credential and model state. Field names match
// the health endpoint's JSON surface; the zero pointer fields are omitted
// so each provider only reports the fields that apply to it.
type Status struct {
	HasKey         *bool  `json:"hasKey,omitempty"`
	HasCredentials *bool  `json:"hasCredentials,omitempty"`
	AuthMode       string `json:"authMode,omitempty"`
	Model          string `json:"model,omitempty"`
}

// Result is the outcome of a successful upstream exchange. Exactly one of
// Response or Raw is set.
type Result struct {
	// Response is a normalized chat completion (Gemini path).
	Response *api.ChatResponse

	// Raw relays an upstream body unmodified (Groq path), including
	// upstream error statuses and streamed bodies.
	Raw *RawBody
}

// RawBody carries an upstream response for verbatim relay. The transport
// layer copies Body to the client and closes it.
type RawBody struct {
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
}

// UpstreamError carries a non-2xx upstream response whose status code and
// (possibly augmented) JSON body are re-emitted to the client.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (HTTP %d)", e.StatusCode)
}
