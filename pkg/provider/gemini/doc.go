// Package gemini implements the Provider interface for Google
// Generative-Language / Vertex :generateContent backends. It maps
// OpenAI-style role-tagged messages into the upstream content-list format
// (separating system instructions from conversational turns), normalizes
// candidate/parts responses back into chat-completion shape, and
// authenticates with either a query-string API key or a per-request
// service-account bearer token.
package gemini
