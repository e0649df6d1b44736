package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrFieldLength     = errors.New("protocol: invalid field length")
	ErrInvalidKind     = errors.New("protocol: invalid message kind")
	ErrLengthMismatch  = errors.New("protocol: wire length mismatch")
	ErrLengthInvariant = errors.New("protocol: encoded length invariant violated")
	ErrMalformed       = errors.New("protocol: malformed wire message")
)

// Field names used by FieldLengthError.
const (
	FieldMessageID = "messageID"
	FieldProcessID = "processID"
)

// FieldLengthError reports a messageID or processID that is not one byte.
type FieldLengthError struct {
	Field  string
	Length int
}

func (e FieldLengthError) Error() string {
	return fmt.Sprintf("protocol: %s must be 1 byte, got %d", e.Field, e.Length)
}

func (e FieldLengthError) Is(target error) bool { return target == ErrFieldLength }

// InvalidKindError reports a kind or wire code outside the closed set.
type InvalidKindError struct {
	Value string
}

func (e InvalidKindError) Error() string {
	return fmt.Sprintf("protocol: invalid message kind %q", e.Value)
}

func (e InvalidKindError) Is(target error) bool { return target == ErrInvalidKind }

// LengthMismatchError reports a decode input that is not WireLen bytes.
type LengthMismatchError struct {
	Length int
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("protocol: wire message must be %d bytes, got %d", WireLen, e.Length)
}

func (e LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// LengthInvariantError means an encoded message came out at the wrong size.
// It indicates an internal inconsistency, not bad input.
type LengthInvariantError struct {
	Length int
}

func (e LengthInvariantError) Error() string {
	return fmt.Sprintf("protocol: encoded message is %d bytes, want %d", e.Length, WireLen)
}

func (e LengthInvariantError) Is(target error) bool { return target == ErrLengthInvariant }

// MalformedError reports a WireLen-byte input whose delimiters are misplaced.
type MalformedError struct {
	Wire string
}

func (e MalformedError) Error() string {
	return fmt.Sprintf("protocol: malformed wire message %q", e.Wire)
}

func (e MalformedError) Is(target error) bool { return target == ErrMalformed }
