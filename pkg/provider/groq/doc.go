// Package groq implements the Provider interface for Groq and any
// OpenAI-compatible Chat Completions backend. Because the inbound and
// upstream protocols already agree, the adapter applies the relay's
// generation-parameter defaults and otherwise relays upstream responses
// verbatim: status code, content type, and body, streamed or not.
package groq
