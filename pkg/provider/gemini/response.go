package gemini

import (
	"strings"
	"time"

	"github.com/rhuss/bote/pkg/api"
)

const defaultFinishReason = "stop"

// translateResponse normalizes a :generateContent response into an
// OpenAI-style chat completion. The reply text comes from the first
// candidate holding at least one part; if none qualifies it is the empty
// string. The completion ID is the upstream name when present, else a
// timestamp-derived synthetic one.
func translateResponse(resp *generateContentResponse, defaultModel string) *api.ChatResponse {
	text := ""
	finishReason := defaultFinishReason

	for _, cand := range resp.Candidates {
		if len(cand.Content.Parts) == 0 {
			continue
		}
		text = concatParts(cand.Content.Parts)
		if cand.FinishReason != "" {
			finishReason = strings.ToLower(cand.FinishReason)
		}
		break
	}

	id := resp.Name
	if id == "" {
		id = api.NewCompletionID()
	}

	model := resp.ModelVersion
	if model == "" {
		model = defaultModel
	}

	out := &api.ChatResponse{
		ID:      id,
		Object:  api.ObjectChatCompletion,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []api.Choice{{
			Index:        0,
			Message:      api.ResponseMessage{Role: api.RoleAssistant, Content: text},
			FinishReason: finishReason,
		}},
	}

	if u := resp.UsageMetadata; u != nil {
		out.Usage = &api.Usage{
			PromptTokens:     u.PromptTokenCount,
			CompletionTokens: u.CandidatesTokenCount,
			TotalTokens:      u.TotalTokenCount,
		}
	}

	return out
}
