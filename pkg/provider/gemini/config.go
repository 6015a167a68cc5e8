package gemini

// Config holds configuration for the Gemini provider adapter.
type Config struct {
	// BaseURL is the Generative-Language API root
	// (e.g., "https://generativelanguage.googleapis.com/v1beta").
	BaseURL string

	// Model is the default model used when the request names none.
	Model string
}
