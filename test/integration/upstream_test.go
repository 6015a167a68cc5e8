package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

// startMockGroq returns a deterministic OpenAI-compatible upstream. It
// authenticates with the fixed key "test-groq-key" and echoes a reply
// derived from the last user message.
func startMockGroq() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-groq-key" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"invalid API key","type":"invalid_request_error"}}`)
			return
		}

		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string          `json:"role"`
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Model == "throttled-model" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`)
			return
		}

		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			for _, token := range []string{"streamed", " reply"} {
				fmt.Fprintf(w, `data: {"object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":%q}}]}`+"\n\n", token)
				flusher.Flush()
			}
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-upstream",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []any{
				map[string]any{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": "verbatim reply"},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{"prompt_tokens": 7, "completion_tokens": 3, "total_tokens": 10},
		})
	})
	return httptest.NewServer(mux)
}

// startMockGemini returns a deterministic Generative-Language upstream
// plus a jwt-bearer token endpoint. API-key calls must carry
// key=test-gemini-key; bearer calls must present the token minted by the
// /token endpoint.
func startMockGemini() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil ||
			r.PostFormValue("grant_type") != "urn:ietf:params:oauth:grant-type:jwt-bearer" ||
			r.PostFormValue("assertion") == "" {
			http.Error(w, "bad token request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-sa-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("POST /models/{model}", func(w http.ResponseWriter, r *http.Request) {
		model, ok := strings.CutSuffix(r.PathValue("model"), ":generateContent")
		if !ok {
			http.NotFound(w, r)
			return
		}

		authorized := r.URL.Query().Get("key") == "test-gemini-key" ||
			r.Header.Get("Authorization") == "Bearer mock-sa-token"
		if !authorized || model == "denied-model" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{
					"code":    403,
					"status":  "PERMISSION_DENIED",
					"message": "permission denied on resource",
				},
			})
			return
		}

		var req struct {
			SystemInstruction *struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"systemInstruction"`
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Echo the last user part so tests can check the mapping end to end.
		var lastText string
		for _, c := range req.Contents {
			if c.Role == "user" && len(c.Parts) > 0 {
				lastText = c.Parts[len(c.Parts)-1].Text
			}
		}

		reply := "you said: " + lastText
		if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
			reply = "[" + req.SystemInstruction.Parts[0].Text + "] " + reply
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": reply}},
					},
					"finishReason": "STOP",
				},
			},
			"modelVersion": model + "-001",
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 4,
				"totalTokenCount":      16,
			},
		})
	})

	return httptest.NewServer(mux)
}
