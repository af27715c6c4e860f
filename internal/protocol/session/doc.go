// Package session owns one EPP connection from greeting to logout.
//
// Ownership boundary:
// - dialing and the TLS handshake
// - the greeting -> login -> logout state machine
// - request/response exchange and clTRID correlation
// - per-transaction tracing, logging, and the observer hook
//
// A Session serves one transaction at a time. EPP allows a single
// outstanding command per connection, so callers that share a session
// serialize their calls.
package session
