package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rhuss/bote/pkg/api"
	"github.com/rhuss/bote/pkg/provider"
)

// fakeProvider is a scripted provider.Provider for handler tests.
type fakeProvider struct {
	name   string
	caps   provider.Capabilities
	status provider.Status
	result *provider.Result
	err    error
	calls  int
}

func (f *fakeProvider) Name() string                      { return f.name }
func (f *fakeProvider) Capabilities() provider.Capabilities { return f.caps }
func (f *fakeProvider) Status() provider.Status           { return f.status }
func (f *fakeProvider) Close() error                      { return nil }

func (f *fakeProvider) Chat(ctx context.Context, req *api.ChatRequest) (*provider.Result, error) {
	f.calls++
	return f.result, f.err
}

func postChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	hasCreds := true
	fp := &fakeProvider{
		name: "gemini",
		status: provider.Status{
			HasCredentials: &hasCreds,
			AuthMode:       "service_account",
			Model:          "gemini-2.0-flash",
		},
	}
	h := NewHandler(fp, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["ok"] != true {
		t.Error("ok = false, want true")
	}
	if got["service"] != ServiceName {
		t.Errorf("service = %v, want %q", got["service"], ServiceName)
	}
	if got["provider"] != "gemini" {
		t.Errorf("provider = %v", got["provider"])
	}
	if got["hasCredentials"] != true {
		t.Errorf("hasCredentials = %v", got["hasCredentials"])
	}
	if got["authMode"] != "service_account" {
		t.Errorf("authMode = %v", got["authMode"])
	}
	if _, ok := got["hasKey"]; ok {
		t.Error("hasKey must be omitted for the gemini provider")
	}
}

func TestHandleChatInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", `{oops`},
		{"messages missing", `{}`},
		{"messages empty", `{"messages":[]}`},
		{"messages not a list", `{"messages":"hello"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProvider{name: "gemini"}
			rec := postChat(t, NewHandler(fp, nil), tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var got map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got["error"] != string(api.ErrorTypeInvalidRequest) {
				t.Errorf("error = %v, want invalid_request", got["error"])
			}
			if fp.calls != 0 {
				t.Error("provider must not be called for an invalid request")
			}
		})
	}
}

func TestHandleChatStreamRejectedForNonStreamingProvider(t *testing.T) {
	fp := &fakeProvider{name: "gemini", caps: provider.Capabilities{Streaming: false}}
	rec := postChat(t, NewHandler(fp, nil),
		`{"stream":true,"messages":[{"role":"user","content":"Hi"}]}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if fp.calls != 0 {
		t.Error("provider must not be called for a rejected stream request")
	}
}

func TestHandleChatNormalizedResponse(t *testing.T) {
	fp := &fakeProvider{
		name: "gemini",
		result: &provider.Result{Response: &api.ChatResponse{
			ID:     "chatcmpl-1",
			Object: api.ObjectChatCompletion,
			Choices: []api.Choice{{
				Message:      api.ResponseMessage{Role: api.RoleAssistant, Content: "Hello"},
				FinishReason: "stop",
			}},
		}},
	}
	rec := postChat(t, NewHandler(fp, nil), `{"messages":[{"role":"user","content":"Hi"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got api.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Choices[0].Message.Content != "Hello" {
		t.Errorf("content = %q", got.Choices[0].Message.Content)
	}
}

func TestHandleChatRawRelay(t *testing.T) {
	raw := `{"id":"chatcmpl-upstream","object":"chat.completion"}`
	fp := &fakeProvider{
		name: "groq",
		caps: provider.Capabilities{Streaming: true},
		result: &provider.Result{Raw: &provider.RawBody{
			StatusCode:  http.StatusOK,
			ContentType: "application/json",
			Body:        io.NopCloser(strings.NewReader(raw)),
		}},
	}
	rec := postChat(t, NewHandler(fp, nil), `{"messages":[{"role":"user","content":"Hi"}]}`)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != raw {
		t.Errorf("body = %q, want verbatim relay", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestHandleChatRawRelayOfUpstreamError(t *testing.T) {
	raw := `{"error":{"message":"model not found"}}`
	fp := &fakeProvider{
		name: "groq",
		caps: provider.Capabilities{Streaming: true},
		result: &provider.Result{Raw: &provider.RawBody{
			StatusCode:  http.StatusNotFound,
			ContentType: "application/json",
			Body:        io.NopCloser(strings.NewReader(raw)),
		}},
	}
	rec := postChat(t, NewHandler(fp, nil), `{"messages":[{"role":"user","content":"Hi"}]}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want upstream 404 relayed", rec.Code)
	}
	if rec.Body.String() != raw {
		t.Errorf("body = %q, want verbatim relay", rec.Body.String())
	}
}

func TestHandleChatErrorDispatch(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "configuration error",
			err:        api.NewConfigurationError("server is missing the Groq API key"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "configuration_error",
		},
		{
			name:       "token error",
			err:        api.NewTokenError("exchange failed"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "token_error",
		},
		{
			name:       "upstream error with status",
			err:        &provider.UpstreamError{StatusCode: http.StatusForbidden, Body: []byte(`{"error":{},"hint":"h"}`)},
			wantStatus: http.StatusForbidden,
			wantError:  "",
		},
		{
			name:       "unexpected error",
			err:        io.ErrUnexpectedEOF,
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProvider{name: "gemini", err: tt.err}
			rec := postChat(t, NewHandler(fp, nil), `{"messages":[{"role":"user","content":"Hi"}]}`)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantError != "" {
				var got map[string]any
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatal(err)
				}
				if got["error"] != tt.wantError {
					t.Errorf("error = %v, want %q", got["error"], tt.wantError)
				}
			}
		})
	}
}
