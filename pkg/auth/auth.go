package auth

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
)

// Mode identifies how the relay authenticates against the
// Generative-Language upstream.
type Mode string

const (
	// ModeNone means no usable credential material was found.
	ModeNone Mode = "none"
	// ModeAPIKey means a literal API key is sent with each request.
	ModeAPIKey Mode = "api_key"
	// ModeServiceAccount means a bearer token is acquired per request
	// from a service-account key.
	ModeServiceAccount Mode = "service_account"
)

// Config enumerates the credential sources inspected by Resolve, in
// priority order.
type Config struct {
	// APIKey is a literal Generative-Language API key (highest priority).
	APIKey string

	// ServiceAccountJSON is an inline service-account key as a JSON string.
	ServiceAccountJSON string

	// CredentialsFile is a path to a service-account key file
	// (lowest priority).
	CredentialsFile string

	// TokenURL overrides the OAuth2 token endpoint. When empty, the key's
	// token_uri is used, falling back to the Google default. Set by tests.
	TokenURL string

	// HTTPClient performs the token exchange. Defaults to a plain client.
	HTTPClient *http.Client
}

// Credentials is the immutable credential state resolved once at startup.
// It is safe for concurrent use.
type Credentials struct {
	mode   Mode
	apiKey string
	source oauth2.TokenSource
}

// Resolve inspects the configured credential sources in priority order and
// returns the first usable one. It never fails: broken material degrades
// to ModeNone.
func Resolve(cfg Config) *Credentials {
	if cfg.APIKey != "" {
		return &Credentials{mode: ModeAPIKey, apiKey: cfg.APIKey}
	}

	if cfg.ServiceAccountJSON != "" {
		src, err := newTokenSource([]byte(cfg.ServiceAccountJSON), cfg.TokenURL, cfg.HTTPClient)
		if err != nil {
			slog.Warn("ignoring inline service account JSON", "error", err)
		} else {
			return &Credentials{mode: ModeServiceAccount, source: src}
		}
	}

	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			slog.Warn("ignoring unreadable credentials file",
				"path", cfg.CredentialsFile, "error", err)
		} else {
			src, err := newTokenSource(data, cfg.TokenURL, cfg.HTTPClient)
			if err != nil {
				slog.Warn("ignoring malformed credentials file",
					"path", cfg.CredentialsFile, "error", err)
			} else {
				return &Credentials{mode: ModeServiceAccount, source: src}
			}
		}
	}

	return &Credentials{mode: ModeNone}
}

// Mode returns the resolved credential mode.
func (c *Credentials) Mode() Mode {
	return c.mode
}

// Available reports whether any credential material was resolved.
func (c *Credentials) Available() bool {
	return c.mode != ModeNone
}

// APIKey returns the literal API key. Empty unless Mode is ModeAPIKey.
func (c *Credentials) APIKey() string {
	return c.apiKey
}

// Token performs a fresh token exchange and returns a short-lived access
// token. Only valid in ModeServiceAccount; other modes return ErrNoToken.
// Tokens are deliberately not cached: every chat request pays for its own
// exchange, and a failed exchange fails only that request.
func (c *Credentials) Token() (*oauth2.Token, error) {
	if c.source == nil {
		return nil, ErrNoToken
	}
	return c.source.Token()
}
