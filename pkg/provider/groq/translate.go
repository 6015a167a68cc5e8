package groq

import "github.com/rhuss/bote/pkg/api"

// translateRequest builds the upstream Chat Completions payload from an
// inbound request, applying the documented generation-parameter defaults
// and the configured default model.
func translateRequest(req *api.ChatRequest, defaultModel string) chatCompletionRequest {
	cr := chatCompletionRequest{
		Model:       req.Model,
		Temperature: req.ResolveTemperature(),
		MaxTokens:   req.ResolveMaxTokens(),
		TopP:        req.ResolveTopP(),
		Stream:      req.Stream,
	}
	if cr.Model == "" {
		cr.Model = defaultModel
	}

	for _, m := range req.Messages {
		cr.Messages = append(cr.Messages, chatMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return cr
}
