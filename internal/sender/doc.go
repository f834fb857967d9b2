// Package sender implements signed webhook delivery for hooksend.
//
// This package provides:
//   - Compact JSON serialization of the deployment notification
//   - HMAC-SHA256 signing of the exact transmitted bytes
//   - A single synchronous HTTP POST with a bounded timeout
//   - An operator audit trail (URL, signature, payload) on stdout
//
// The sender makes exactly one attempt per invocation. Transport
// failures are returned as errors; HTTP error responses are returned
// as results so the caller can surface the status and body before
// deciding the exit code.
//
// The package integrates with other packages:
//   - internal/payload: notification construction and serialization
//   - internal/signature: HMAC-SHA256 signing and verification
package sender
