package groq

import "encoding/json"

// Chat Completions request types (internal to the Groq adapter). Responses
// are relayed verbatim, so no response types are needed here.

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

// chatMessage carries the client's message through untouched: the content
// shape (string or part list) is already what the upstream expects.
type chatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content,omitempty"`
}
