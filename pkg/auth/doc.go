// Package auth resolves credentials for the Generative-Language upstream.
//
// Three acquisition modes are supported, inspected in strict priority
// order at process start:
//
//  1. A literal API key, sent as a query parameter on upstream calls.
//  2. An inline service-account key JSON string.
//  3. A path to a service-account key file.
//
// The first available mode wins and the result is immutable for the
// process lifetime. Malformed or unreadable service-account material is
// logged and treated as absent, falling through to the next mode; a
// process can legitimately end up with no credentials, in which case every
// chat request fails fast with a configuration error.
//
// In service-account mode, a short-lived access token is acquired per
// request by signing a jwt-bearer assertion with the key and exchanging it
// at the Google OAuth2 token endpoint. Tokens are not cached across
// requests.
package auth
