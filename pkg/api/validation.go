package api

// ValidateRequest checks a ChatRequest for validity. It returns an
// *APIError describing the first validation failure, or nil if the request
// is valid.
//
// Streaming support is a provider capability, not a request property, so it
// is checked separately by the transport layer. Likewise, whether a
// system-only message list is acceptable depends on the upstream protocol
// and is decided by the provider adapter.
func ValidateRequest(req *ChatRequest) *APIError {
	if len(req.Messages) == 0 {
		return NewInvalidRequestError("messages must be a non-empty array")
	}

	if req.Temperature != nil {
		if *req.Temperature < 0.0 || *req.Temperature > 2.0 {
			return NewInvalidRequestError("temperature must be between 0.0 and 2.0")
		}
	}

	if req.TopP != nil {
		if *req.TopP < 0.0 || *req.TopP > 1.0 {
			return NewInvalidRequestError("top_p must be between 0.0 and 1.0")
		}
	}

	if req.MaxTokens != nil && *req.MaxTokens <= 0 {
		return NewInvalidRequestError("max_tokens must be positive")
	}

	return nil
}
