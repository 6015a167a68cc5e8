// Package transport implements the HTTP surface of the bote relay: the
// /api/health and /api/chat handlers, the middleware chain (panic
// recovery, request IDs, structured request logging), and the server
// lifecycle with graceful shutdown.
//
// The handler orchestrates a single stateless request-response cycle:
// validate, check provider capabilities, forward through the configured
// provider adapter, and write either the normalized completion, a verbatim
// upstream relay, or an error envelope.
package transport
