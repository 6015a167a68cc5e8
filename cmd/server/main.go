// Command server runs the bote chat relay.
//
// Configuration via environment variables (a config.yaml and .env file
// are also honored, see pkg/config):
//
//	BOTE_PORT                       - Listen port (default: 8080)
//	BOTE_PROVIDER                   - Upstream provider: "groq" or "gemini" (default: groq)
//	BOTE_GROQ_BASE_URL              - OpenAI-compatible API root
//	GROQ_API_KEY                    - Groq API key
//	BOTE_GROQ_MODEL                 - Default Groq model
//	BOTE_GEMINI_BASE_URL            - Generative-Language API root
//	GEMINI_API_KEY                  - Gemini API key
//	GOOGLE_SERVICE_ACCOUNT_JSON     - Inline service-account key JSON
//	GOOGLE_APPLICATION_CREDENTIALS  - Path to a service-account key file
//	BOTE_GEMINI_MODEL               - Default Gemini model
//	BOTE_DEBUG                      - Debug categories (providers, auth, transport, config, all)
//	BOTE_LOG_LEVEL                  - ERROR, WARN, INFO, DEBUG, TRACE
//	BOTE_CONFIG                     - Explicit config file path
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/rhuss/bote/pkg/auth"
	"github.com/rhuss/bote/pkg/config"
	"github.com/rhuss/bote/pkg/debug"
	"github.com/rhuss/bote/pkg/observability"
	"github.com/rhuss/bote/pkg/provider"
	"github.com/rhuss/bote/pkg/provider/gemini"
	"github.com/rhuss/bote/pkg/provider/groq"
	"github.com/rhuss/bote/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("BOTE_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	prov, err := buildProvider(cfg)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}
	defer prov.Close()

	slog.Info("provider configured", "provider", prov.Name())

	handler := transport.NewHandler(prov, slog.Default())
	mux := handler.Routes()

	if cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	// Browser clients talk to the relay directly, so allow cross-origin
	// calls to the API.
	root := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	}).Handler(observability.MetricsMiddleware(mux))

	srv := transport.NewServer(root,
		transport.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transport.WithReadTimeout(cfg.Server.ReadTimeout),
		transport.WithWriteTimeout(cfg.Server.WriteTimeout),
	)

	return srv.ListenAndServe()
}

// buildProvider constructs the single provider adapter selected by the
// configuration.
func buildProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		return groq.New(groq.Config{
			BaseURL: cfg.Groq.BaseURL,
			APIKey:  cfg.Groq.APIKey,
			Model:   cfg.Groq.Model,
		})
	case config.ProviderGemini:
		creds := auth.Resolve(auth.Config{
			APIKey:             cfg.Gemini.APIKey,
			ServiceAccountJSON: cfg.Gemini.ServiceAccountJSON,
			CredentialsFile:    cfg.Gemini.CredentialsFile,
		})
		return gemini.New(gemini.Config{
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
		}, creds)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
