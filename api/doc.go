// ABOUTME: Package documentation for the API layer
// ABOUTME: Describes the HTTP surface built on Huma and chi

// Package api wires the HTTP surface of the service.
//
// Typed endpoints (paper search) are registered through Huma for OpenAPI
// documentation and validation. The agent proxy endpoint is registered
// directly on the chi router because its response is plain markdown, a byte
// stream, or raw JSON depending on the runtime reply.
package api
