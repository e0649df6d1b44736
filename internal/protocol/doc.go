// Package protocol owns the message wire contract and its codec.
//
// Ownership boundary:
// - message kind vocabulary and wire codes
// - fixed-width wire form: messageID "|" processID "|" code (10 bytes)
// - construction, encode and decode validation
//
// Decode reads segments by fixed offset: the delimiter must sit at offsets 1
// and 3. Inputs such as "12|34567|8" or a string with no delimiter are
// rejected with MalformedError. The id bytes are opaque, so "|" is a legal
// messageID or processID and round-trips.
package protocol
