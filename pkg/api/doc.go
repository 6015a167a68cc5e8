// Package api defines the wire types for the bote chat relay: the inbound
// OpenAI-style chat request and message shapes, the normalized
// chat-completion response, the error envelope returned on failure, and
// request validation.
//
// Message content is deliberately kept as raw JSON here. Clients send it as
// a string, a list of parts, or a bare object; decoding the variants is the
// job of the provider adapters, not the transport layer.
package api
