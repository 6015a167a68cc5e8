package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rhuss/bote/pkg/api"
	"github.com/rhuss/bote/pkg/debug"
	"github.com/rhuss/bote/pkg/provider"
)

// GroqProvider implements provider.Provider for OpenAI-compatible
// Chat Completions backends.
type GroqProvider struct {
	cfg    Config
	client *http.Client
}

// Ensure GroqProvider implements provider.Provider at compile time.
var _ provider.Provider = (*GroqProvider)(nil)

// New creates a new GroqProvider with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*GroqProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("groq: BaseURL is required")
	}

	// Normalize: remove trailing slash from base URL.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// No client timeout: a relayed call runs to completion or failure as
	// reported by the transport, and streamed bodies can legitimately
	// outlive any fixed deadline.
	return &GroqProvider{
		cfg:    cfg,
		client: &http.Client{},
	}, nil
}

// Name returns the provider identifier.
func (p *GroqProvider) Name() string {
	return "groq"
}

// Capabilities returns what this provider supports. The OpenAI-compatible
// path relays streamed bodies as-is, so streaming is allowed.
func (p *GroqProvider) Capabilities() provider.Capabilities {
	return provider.Capabilities{Streaming: true}
}

// Status reports key presence and the default model for the health endpoint.
func (p *GroqProvider) Status() provider.Status {
	hasKey := p.cfg.APIKey != ""
	return provider.Status{
		HasKey: &hasKey,
		Model:  p.cfg.Model,
	}
}

// Chat forwards the request to the upstream /chat/completions endpoint and
// relays the response verbatim, whatever its status code.
func (p *GroqProvider) Chat(ctx context.Context, req *api.ChatRequest) (*provider.Result, error) {
	if p.cfg.APIKey == "" {
		return nil, api.NewConfigurationError("server is missing the Groq API key")
	}

	body, err := json.Marshal(translateRequest(req, p.cfg.Model))
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	url := p.cfg.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	debug.Log("providers", "forwarding chat request", "provider", "groq", "url", url, "stream", req.Stream)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("upstream connection error: %s", err.Error()))
	}

	// The caller takes ownership of the body and relays it unmodified.
	return &provider.Result{
		Raw: &provider.RawBody{
			StatusCode:  httpResp.StatusCode,
			ContentType: httpResp.Header.Get("Content-Type"),
			Body:        httpResp.Body,
		},
	}, nil
}

// Close releases provider resources.
func (p *GroqProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
