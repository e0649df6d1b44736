package protocol

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Codec builds, encodes and decodes messages, logging each rejection to its
// logger before returning the error. A Codec is safe for concurrent use.
type Codec struct {
	log zerolog.Logger
}

// NewCodec returns a codec that reports failures to log.
func NewCodec(log zerolog.Logger) *Codec {
	return &Codec{log: log.With().Str("component", "protocol").Logger()}
}

var defaultCodec atomic.Pointer[Codec]

func init() {
	defaultCodec.Store(NewCodec(zerolog.Nop()))
}

// SetLogger swaps the logger used by the package-level functions.
func SetLogger(log zerolog.Logger) {
	defaultCodec.Store(NewCodec(log))
}

// Default returns the codec behind the package-level functions.
func Default() *Codec {
	return defaultCodec.Load()
}

// NewMessage validates the fields and returns a message.
func NewMessage(messageID, processID string, kind Kind) (Message, error) {
	return Default().NewMessage(messageID, processID, kind)
}

// Encode returns the wire form of msg.
func Encode(msg Message) (string, error) {
	return Default().Encode(msg)
}

// Decode parses a wire string into a message.
func Decode(wire string) (Message, error) {
	return Default().Decode(wire)
}

// Encode returns the wire form of m using the default codec.
func (m Message) Encode() (string, error) {
	return Default().Encode(m)
}

// MarshalText implements encoding.TextMarshaler.
func (m Message) MarshalText() ([]byte, error) {
	wire, err := Default().Encode(m)
	if err != nil {
		return nil, err
	}
	return []byte(wire), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On error m is left
// unchanged; on success all three fields are replaced together.
func (m *Message) UnmarshalText(text []byte) error {
	parsed, err := Default().Decode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (c *Codec) fail(op string, err error) error {
	c.log.Error().Str("op", op).Err(err).Msg("message rejected")
	return err
}
