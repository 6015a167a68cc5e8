package groq

// Config holds configuration for the Groq provider adapter.
type Config struct {
	// BaseURL is the OpenAI-compatible API root
	// (e.g., "https://api.groq.com/openai/v1").
	BaseURL string

	// APIKey authenticates upstream calls. Requests fail with a
	// configuration error when it is empty.
	APIKey string

	// Model is the default model used when the request names none.
	Model string
}
