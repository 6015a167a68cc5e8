package integration

import (
	"net/http"
	"strings"
	"testing"
)

// TestGroqRelaysVerbatim verifies the groq path passes the upstream JSON
// through unmodified, including the upstream's own id and usage.
func TestGroqRelaysVerbatim(t *testing.T) {
	resp := postJSON(t, testEnv.GroqRelay.URL+"/api/chat", userMessage("hi"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var parsed struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	decodeJSON(t, resp, &parsed)

	if parsed.ID != "chatcmpl-upstream" {
		t.Errorf("id = %q, want the upstream id chatcmpl-upstream", parsed.ID)
	}
	if len(parsed.Choices) != 1 || parsed.Choices[0].Message.Content != "verbatim reply" {
		t.Errorf("unexpected choices: %+v", parsed.Choices)
	}
	if parsed.Usage.TotalTokens != 10 {
		t.Errorf("total_tokens = %d, want 10", parsed.Usage.TotalTokens)
	}
}

// TestGroqRelaysUpstreamErrors verifies non-2xx upstream responses pass
// through with their original status and body.
func TestGroqRelaysUpstreamErrors(t *testing.T) {
	body := userMessage("hi")
	body["model"] = "throttled-model"

	resp := postJSON(t, testEnv.GroqRelay.URL+"/api/chat", body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if got := readBody(t, resp); !strings.Contains(got, "rate_limit_error") {
		t.Errorf("body = %q, want the upstream error envelope", got)
	}
}

// TestGroqStreamsThrough verifies stream=true produces an SSE passthrough
// ending with the upstream [DONE] marker.
func TestGroqStreamsThrough(t *testing.T) {
	body := userMessage("hi")
	body["stream"] = true

	resp := postJSON(t, testEnv.GroqRelay.URL+"/api/chat", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	got := readBody(t, resp)
	if !strings.Contains(got, `"content":"streamed"`) {
		t.Errorf("stream body missing first chunk: %q", got)
	}
	if !strings.Contains(got, "data: [DONE]") {
		t.Errorf("stream body missing [DONE]: %q", got)
	}
}

// TestGeminiNormalizesResponse verifies the gemini path maps the request
// into :generateContent form and normalizes the reply into the common
// completion shape.
func TestGeminiNormalizesResponse(t *testing.T) {
	resp := postJSON(t, testEnv.GeminiRelay.URL+"/api/chat", map[string]any{
		"messages": []map[string]any{
			{"role": "system", "content": "be brief"},
			{"role": "user", "content": "hello there"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var parsed struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	decodeJSON(t, resp, &parsed)

	if !strings.HasPrefix(parsed.ID, "chatcmpl-") {
		t.Errorf("id = %q, want chatcmpl- prefix", parsed.ID)
	}
	if parsed.Object != "chat.completion" {
		t.Errorf("object = %q, want chat.completion", parsed.Object)
	}
	if parsed.Model != "mock-gemini-001" {
		t.Errorf("model = %q, want the upstream modelVersion", parsed.Model)
	}
	if len(parsed.Choices) != 1 {
		t.Fatalf("got %d choices, want 1", len(parsed.Choices))
	}
	choice := parsed.Choices[0]
	if choice.Message.Role != "assistant" {
		t.Errorf("role = %q, want assistant", choice.Message.Role)
	}
	// The mock prefixes the systemInstruction text, proving the system
	// message traveled as an instruction rather than a content turn.
	if choice.Message.Content != "[be brief] you said: hello there" {
		t.Errorf("content = %q", choice.Message.Content)
	}
	if choice.FinishReason != "stop" {
		t.Errorf("finish_reason = %q, want stop", choice.FinishReason)
	}
	if parsed.Usage.TotalTokens != 16 {
		t.Errorf("total_tokens = %d, want 16", parsed.Usage.TotalTokens)
	}
}

// TestGeminiListContent verifies list-shaped message content is flattened
// into parts before forwarding.
func TestGeminiListContent(t *testing.T) {
	resp := postJSON(t, testEnv.GeminiRelay.URL+"/api/chat", map[string]any{
		"messages": []map[string]any{
			{"role": "user", "content": []any{
				"first",
				map[string]any{"type": "text", "text": "second"},
			}},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	decodeJSON(t, resp, &parsed)

	if len(parsed.Choices) != 1 {
		t.Fatalf("got %d choices, want 1", len(parsed.Choices))
	}
	// The mock echoes the last part of the last user turn.
	if got := parsed.Choices[0].Message.Content; got != "you said: second" {
		t.Errorf("content = %q, want the flattened second part echoed", got)
	}
}

// TestGeminiServiceAccountFlow verifies the jwt-bearer exchange happens
// transparently and the upstream call succeeds with the minted token.
func TestGeminiServiceAccountFlow(t *testing.T) {
	resp := postJSON(t, testEnv.GeminiSARelay.URL+"/api/chat", userMessage("token test"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, readBody(t, resp))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	decodeJSON(t, resp, &parsed)

	if len(parsed.Choices) != 1 || parsed.Choices[0].Message.Content != "you said: token test" {
		t.Errorf("unexpected choices: %+v", parsed.Choices)
	}
}
