package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rhuss/bote/pkg/api"
	"github.com/rhuss/bote/pkg/auth"
	"github.com/rhuss/bote/pkg/debug"
	"github.com/rhuss/bote/pkg/observability"
	"github.com/rhuss/bote/pkg/provider"
)

// GeminiProvider implements provider.Provider for Generative-Language
// :generateContent backends.
type GeminiProvider struct {
	cfg    Config
	creds  *auth.Credentials
	client *http.Client
}

// Ensure GeminiProvider implements provider.Provider at compile time.
var _ provider.Provider = (*GeminiProvider)(nil)

// New creates a new GeminiProvider with the given configuration and the
// credential state resolved at startup.
func New(cfg Config, creds *auth.Credentials) (*GeminiProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gemini: BaseURL is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("gemini: credentials are required (resolve them first)")
	}

	// Normalize: remove trailing slash from base URL.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &GeminiProvider{
		cfg:    cfg,
		creds:  creds,
		client: &http.Client{},
	}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Capabilities returns what this provider supports. The :generateContent
// path cannot relay incremental output, so streaming is rejected.
func (p *GeminiProvider) Capabilities() provider.Capabilities {
	return provider.Capabilities{Streaming: false}
}

// Status reports credential mode and the default model for the health
// endpoint.
func (p *GeminiProvider) Status() provider.Status {
	hasCreds := p.creds.Available()
	return provider.Status{
		HasCredentials: &hasCreds,
		AuthMode:       string(p.creds.Mode()),
		Model:          p.cfg.Model,
	}
}

// Chat maps the request into :generateContent form, performs the upstream
// call with the resolved credential mode, and normalizes the response.
func (p *GeminiProvider) Chat(ctx context.Context, req *api.ChatRequest) (*provider.Result, error) {
	if !p.creds.Available() {
		return nil, api.NewConfigurationError("server is missing Generative Language credentials")
	}

	payload := translateRequest(req)
	if len(payload.Contents) == 0 {
		return nil, api.NewInvalidRequestError("messages must contain at least one non-system turn")
	}

	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	endpoint := p.cfg.BaseURL + "/models/" + model + ":generateContent"
	if p.creds.Mode() == auth.ModeAPIKey {
		endpoint += "?key=" + url.QueryEscape(p.creds.APIKey())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if p.creds.Mode() == auth.ModeServiceAccount {
		tok, err := p.creds.Token()
		if err != nil {
			observability.TokenExchangesTotal.WithLabelValues("error").Inc()
			return nil, api.NewTokenError(fmt.Sprintf("service account token exchange failed: %s", err.Error()))
		}
		observability.TokenExchangesTotal.WithLabelValues("success").Inc()
		httpReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	}

	debug.Log("providers", "forwarding chat request",
		"provider", "gemini", "model", model, "auth_mode", string(p.creds.Mode()))

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("upstream connection error: %s", err.Error()))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("reading upstream response: %s", err.Error()))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, mapHTTPError(httpResp.StatusCode, respBody)
	}

	var upstream generateContentResponse
	if err := json.Unmarshal(respBody, &upstream); err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to parse upstream response: %s", err.Error()))
	}

	return &provider.Result{Response: translateResponse(&upstream, model)}, nil
}

// Close releases provider resources.
func (p *GeminiProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
