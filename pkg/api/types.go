package api

import "encoding/json"

// Message roles accepted on inbound requests.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Generation parameter defaults applied when the client omits a field.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 180
	DefaultTopP        = 0.9
)

// ChatMessage is a single role-tagged conversation turn. Content is kept
// as raw JSON because clients may send a plain string, a list of content
// parts, or an object with a text/content field.
type ChatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content,omitempty"`
}

// ChatRequest is the inbound chat-completion request. All generation
// parameters are optional; Resolve* methods apply the documented defaults.
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// ResolveTemperature returns the effective temperature, defaulting to 0.7.
func (r *ChatRequest) ResolveTemperature() float64 {
	if r.Temperature != nil {
		return *r.Temperature
	}
	return DefaultTemperature
}

// ResolveMaxTokens returns the effective max_tokens, defaulting to 180.
func (r *ChatRequest) ResolveMaxTokens() int {
	if r.MaxTokens != nil {
		return *r.MaxTokens
	}
	return DefaultMaxTokens
}

// ResolveTopP returns the effective top_p, defaulting to 0.9.
func (r *ChatRequest) ResolveTopP() float64 {
	if r.TopP != nil {
		return *r.TopP
	}
	return DefaultTopP
}

// ResponseMessage is the assistant message inside a completion choice.
type ResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Choice is a single completion choice. The relay always produces exactly
// one choice at index 0.
type Choice struct {
	Index        int             `json:"index"`
	Message      ResponseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

// Usage reports upstream token counts. Omitted from the response when the
// upstream did not report any.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the normalized OpenAI-compatible chat completion.
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// ObjectChatCompletion is the object tag on normalized responses.
const ObjectChatCompletion = "chat.completion"
