// Package session carries protocol messages between peer processes over TCP.
//
// Ownership boundary:
// - dial with retry/backoff
// - per-connection send/receive with deadlines
// - accept loop delivering decoded messages to a handler
//
// Coordination semantics (queueing requests, issuing grants) live above this
// package; session only moves well-formed messages.
package session
