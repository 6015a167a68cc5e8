package gemini

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rhuss/bote/pkg/api"
)

// translateRequest converts an inbound chat request into a
// :generateContent payload, applying the documented generation-parameter
// defaults. Contents may legitimately come out empty when every inbound
// message was a system instruction; the caller treats that as a request
// validation error.
func translateRequest(req *api.ChatRequest) generateContentRequest {
	contents, systemParts := mapMessages(req.Messages)

	gr := generateContentRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     req.ResolveTemperature(),
			TopP:            req.ResolveTopP(),
			MaxOutputTokens: req.ResolveMaxTokens(),
		},
	}
	if len(systemParts) > 0 {
		gr.SystemInstruction = &geminiContent{Role: roleSystem, Parts: systemParts}
	}
	return gr
}

// mapMessages walks the messages in order, producing the conversational
// contents and the accumulated system-instruction parts. Messages lacking
// a role are discarded. System messages contribute their parts to a single
// accumulated list (order preserved, not wrapped per message); assistant
// maps to the upstream "model" role, everything else to "user". No content
// entry is ever part-less.
func mapMessages(messages []api.ChatMessage) ([]geminiContent, []geminiPart) {
	var contents []geminiContent
	var systemParts []geminiPart

	for _, m := range messages {
		if m.Role == "" {
			continue
		}

		parts := normalizeContent(m.Content)
		if len(parts) == 0 {
			parts = []geminiPart{{}}
		}

		if m.Role == api.RoleSystem {
			systemParts = append(systemParts, parts...)
			continue
		}

		role := roleUser
		if m.Role == api.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, geminiContent{Role: role, Parts: parts})
	}

	return contents, systemParts
}

// normalizeContent reduces the raw content variants to a non-empty list of
// text parts:
//
//   - null or absent: one empty-text part
//   - list: each entry mapped (raw string, {type:"text", text:...}, or an
//     object with a string content field become text parts; anything else
//     is dropped without shifting the survivors); an empty result is
//     replaced by one empty-text part
//   - object: one text part from a string text or content field, else one
//     empty-text part
//   - string: one text part
//   - any other scalar: one text part from its literal form
func normalizeContent(raw json.RawMessage) []geminiPart {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []geminiPart{{}}
	}

	switch raw[0] {
	case '[':
		return normalizeList(raw)
	case '{':
		if text, ok := textFromObject(raw); ok {
			return []geminiPart{{Text: text}}
		}
		return []geminiPart{{}}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return []geminiPart{{}}
		}
		return []geminiPart{{Text: s}}
	default:
		// Bare scalar (number, bool): its JSON literal is its string form.
		return []geminiPart{{Text: string(raw)}}
	}
}

// normalizeList maps each list entry to a text part, dropping unrecognized
// shapes.
func normalizeList(raw json.RawMessage) []geminiPart {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []geminiPart{{}}
	}

	var parts []geminiPart
	for _, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		switch entry[0] {
		case '"':
			var s string
			if err := json.Unmarshal(entry, &s); err == nil {
				parts = append(parts, geminiPart{Text: s})
			}
		case '{':
			if text, ok := textFromListEntry(entry); ok {
				parts = append(parts, geminiPart{Text: text})
			}
		}
		// Anything else is dropped.
	}

	if len(parts) == 0 {
		return []geminiPart{{}}
	}
	return parts
}

// textFromListEntry extracts the text from a structured content part:
// {type:"text", text:"..."} or any object with a string content field.
func textFromListEntry(raw json.RawMessage) (string, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return "", false
	}

	var typ string
	if rawType, present := fields["type"]; present {
		if err := json.Unmarshal(rawType, &typ); err == nil && typ == "text" {
			var text string
			if rawText, present := fields["text"]; present {
				if err := json.Unmarshal(rawText, &text); err == nil {
					return text, true
				}
			}
		}
	}

	if rawContent, present := fields["content"]; present {
		var content string
		if err := json.Unmarshal(rawContent, &content); err == nil {
			return content, true
		}
	}

	return "", false
}

// textFromObject extracts the text from a bare object content value via
// its text field, falling back to content.
func textFromObject(raw json.RawMessage) (string, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return "", false
	}

	for _, name := range []string{"text", "content"} {
		if rawField, present := fields[name]; present {
			var s string
			if err := json.Unmarshal(rawField, &s); err == nil {
				return s, true
			}
		}
	}
	return "", false
}

func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// concatParts joins candidate part texts in order with no separator and
// trims surrounding whitespace.
func concatParts(parts []geminiPart) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
