package transport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rhuss/bote/pkg/api"
	"github.com/rhuss/bote/pkg/debug"
	"github.com/rhuss/bote/pkg/observability"
	"github.com/rhuss/bote/pkg/provider"
)

// ServiceName identifies the relay in health responses.
const ServiceName = "bote"

// DefaultMaxBodySize bounds inbound request bodies.
const DefaultMaxBodySize = 10 << 20 // 10 MB

// Handler serves the relay's HTTP API on top of a single configured
// provider adapter. It holds no per-request state.
type Handler struct {
	prov        provider.Provider
	maxBodySize int64
	logger      *slog.Logger
}

// NewHandler creates a Handler for the given provider.
func NewHandler(prov provider.Provider, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		prov:        prov,
		maxBodySize: DefaultMaxBodySize,
		logger:      logger,
	}
}

// Routes returns the relay's route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("POST /api/chat", h.handleChat)
	return mux
}

// healthResponse embeds the provider status so each provider only reports
// the credential fields that apply to it.
type healthResponse struct {
	OK       bool   `json:"ok"`
	Service  string `json:"service"`
	Provider string `json:"provider"`
	provider.Status
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		OK:       true,
		Service:  ServiceName,
		Provider: h.prov.Name(),
		Status:   h.prov.Status(),
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req api.ChatRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		WriteAPIError(w, api.NewInvalidRequestError(
			"request body must be a JSON object with a messages array"))
		return
	}

	if apiErr := api.ValidateRequest(&req); apiErr != nil {
		WriteAPIError(w, apiErr)
		return
	}

	if apiErr := provider.ValidateCapabilities(h.prov.Capabilities(), &req); apiErr != nil {
		WriteAPIError(w, apiErr)
		return
	}

	start := time.Now()
	res, err := h.prov.Chat(r.Context(), &req)
	h.recordUpstream(&req, res, err, time.Since(start))
	if err != nil {
		h.writeChatError(w, r, err)
		return
	}

	if res.Raw != nil {
		h.relayRaw(w, res.Raw)
		return
	}

	writeJSON(w, http.StatusOK, res.Response)
}

// recordUpstream tracks the outcome and latency of the upstream call, plus
// token usage when a normalized response carries it.
func (h *Handler) recordUpstream(req *api.ChatRequest, res *provider.Result, err error, elapsed time.Duration) {
	var normalized *api.ChatResponse
	if err == nil && res != nil {
		normalized = res.Response
	}

	model := req.Model
	if model == "" && normalized != nil {
		model = normalized.Model
	}
	if model == "" {
		model = "default"
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	observability.RecordUpstream(h.prov.Name(), model, status, elapsed.Seconds())

	if normalized != nil && normalized.Usage != nil {
		observability.RecordTokens(h.prov.Name(), model,
			normalized.Usage.PromptTokens, normalized.Usage.CompletionTokens)
	}
}

// writeChatError dispatches on the provider error variants. Anything
// unexpected becomes a generic 500 with a string summary only.
func (h *Handler) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *api.APIError:
		WriteAPIError(w, e)
	case *provider.UpstreamError:
		writeUpstreamError(w, e)
	default:
		h.logger.ErrorContext(r.Context(), "chat request failed",
			"request_id", RequestIDFromContext(r.Context()), "error", err.Error())
		WriteAPIError(w, api.NewInternalError(err.Error()))
	}
}

// relayRaw copies an upstream body to the client unmodified, flushing as
// data arrives so streamed upstream responses pass through incrementally.
func (h *Handler) relayRaw(w http.ResponseWriter, raw *provider.RawBody) {
	defer raw.Body.Close()

	if raw.ContentType != "" {
		w.Header().Set("Content-Type", raw.ContentType)
	}
	w.WriteHeader(raw.StatusCode)

	rc := http.NewResponseController(w)
	buf := make([]byte, 32<<10)
	for {
		n, err := raw.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				debug.Log("transport", "client write failed during relay", "error", werr.Error())
				return
			}
			// Flush is best effort; not all writers support it.
			_ = rc.Flush()
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			debug.Log("transport", "upstream read failed during relay", "error", err.Error())
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
