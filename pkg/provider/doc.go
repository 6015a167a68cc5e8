// Package provider defines the upstream adapter contract for the bote
// relay and the shared types adapters hand back to the transport layer.
package provider
