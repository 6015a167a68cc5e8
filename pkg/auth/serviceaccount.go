package auth

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/rhuss/bote/pkg/debug"
)

const (
	// googleTokenURL is the default OAuth2 token endpoint for
	// service-account key exchange.
	googleTokenURL = "https://oauth2.googleapis.com/token"

	// scopeCloudPlatform is the scope requested for upstream calls.
	scopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"

	// grantTypeJWTBearer is the OAuth2 grant used to exchange a signed
	// assertion for an access token.
	grantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// assertionLifetime is the validity window claimed by the signed
	// assertion, not the lifetime of the returned access token.
	assertionLifetime = 5 * time.Minute
)

// ErrNoToken is returned by Credentials.Token when the resolved mode has
// no token source.
var ErrNoToken = errors.New("auth: no token source available")

// serviceAccountKey is the subset of a Google service-account key file the
// relay needs. client_email and private_key are mandatory.
type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// parseServiceAccountKey decodes and validates service-account key JSON.
func parseServiceAccountKey(data []byte) (*serviceAccountKey, *rsa.PrivateKey, error) {
	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, nil, fmt.Errorf("parsing service account key: %w", err)
	}
	if key.ClientEmail == "" {
		return nil, nil, errors.New("service account key is missing client_email")
	}
	if key.PrivateKey == "" {
		return nil, nil, errors.New("service account key is missing private_key")
	}

	rsaKey, err := jwtlib.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing private_key: %w", err)
	}

	return &key, rsaKey, nil
}

// tokenSource exchanges a signed jwt-bearer assertion for an access token
// on every Token call. It implements oauth2.TokenSource without caching.
type tokenSource struct {
	key      *serviceAccountKey
	rsaKey   *rsa.PrivateKey
	tokenURL string
	client   *http.Client
	now      func() time.Time
}

var _ oauth2.TokenSource = (*tokenSource)(nil)

// newTokenSource builds a tokenSource from raw key JSON. The token endpoint
// is taken from tokenURL when set, else the key's token_uri, else the
// Google default.
func newTokenSource(data []byte, tokenURL string, client *http.Client) (*tokenSource, error) {
	key, rsaKey, err := parseServiceAccountKey(data)
	if err != nil {
		return nil, err
	}

	if tokenURL == "" {
		tokenURL = key.TokenURI
	}
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}
	if client == nil {
		client = &http.Client{}
	}

	return &tokenSource{
		key:      key,
		rsaKey:   rsaKey,
		tokenURL: tokenURL,
		client:   client,
		now:      time.Now,
	}, nil
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token signs a fresh RS256 assertion and POSTs it to the token endpoint.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	now := s.now()

	claims := jwtlib.MapClaims{
		"iss":   s.key.ClientEmail,
		"sub":   s.key.ClientEmail,
		"aud":   s.tokenURL,
		"scope": scopeCloudPlatform,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}

	assertion, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims).SignedString(s.rsaKey)
	if err != nil {
		return nil, fmt.Errorf("signing token assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", grantTypeJWTBearer)
	form.Set("assertion", assertion)

	debug.Log("auth", "exchanging service account assertion", "token_url", s.tokenURL)

	resp, err := s.client.Post(s.tokenURL, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token exchange failed (HTTP %d): %s",
			resp.StatusCode, debug.Truncate(string(body), 256))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, errors.New("token response contained no access_token")
	}

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
	}
	if tr.ExpiresIn > 0 {
		tok.Expiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok, nil
}
