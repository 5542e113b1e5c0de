// Package client implements the HTTP client for the captioning backend.
//
// Every pipeline endpoint accepts a form-encoded POST body and answers with a
// JSON envelope carrying a status discriminator (success | info | error) and a
// human-readable message. The client parses the body as JSON regardless of the
// HTTP status code and normalizes non-2xx responses into [*RequestError] values
// that surface the backend's message when one is present.
//
// Requests are paced with a token-bucket rate limiter so step commands and the
// full pipeline share one budget. No retries: one request per call.
package client
