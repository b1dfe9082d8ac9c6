// Package providers implements the Generator interface for the local
// text-generation service.
//
// The only backend is Ollama's native /api/generate endpoint, called once per
// review with streaming disabled. There is no retry. A
// non-success status surfaces as [GenerationError] and any network-level
// problem (including an unparseable body) as [TransportError], letting the
// caller decide which failures are fatal. The HTTP client is held in a struct
// field so tests can point it at an httptest server.
//
// Use [New] to obtain a Generator by provider name and model string.
package providers
