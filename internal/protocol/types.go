package protocol

import (
	"strconv"
	"strings"
)

const (
	// WireLen is the exact size of an encoded message in bytes.
	WireLen = 10
	// CodeLen is the width of a kind code.
	CodeLen = 6
	// Delimiter separates the three wire segments.
	Delimiter = '|'
)

// Kind is the closed set of message kinds.
type Kind uint8

const (
	KindRequest Kind = iota + 1
	KindRelease
	KindGrant
)

var kindCodes = [...]string{
	KindRequest: "111111",
	KindRelease: "222222",
	KindGrant:   "000000",
}

var kindNames = [...]string{
	KindRequest: "REQUEST",
	KindRelease: "RELEASE",
	KindGrant:   "GRANT",
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRequest, KindRelease, KindGrant}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindRequest && k <= KindGrant
}

// Code returns the 6-byte wire code, or "" when k is not valid.
func (k Kind) Code() string {
	if !k.Valid() {
		return ""
	}
	return kindCodes[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// KindFromCode maps a wire code back to its kind.
func KindFromCode(code string) (Kind, bool) {
	for _, k := range Kinds() {
		if kindCodes[k] == code {
			return k, true
		}
	}
	return 0, false
}

// ParseKind maps a kind name (REQUEST, RELEASE, GRANT) to its kind using
// the default codec.
func ParseKind(name string) (Kind, error) {
	return Default().ParseKind(name)
}

// ParseKind maps a kind name to its kind. Names are case-insensitive.
func (c *Codec) ParseKind(name string) (Kind, error) {
	norm := strings.ToUpper(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if kindNames[k] == norm {
			return k, nil
		}
	}
	return 0, c.fail("parse_kind", InvalidKindError{Value: name})
}

// Message is one validated protocol message. The zero value is not a valid
// message; use NewMessage or Decode.
type Message struct {
	messageID string
	processID string
	kind      Kind
}

func (m Message) MessageID() string { return m.messageID }
func (m Message) ProcessID() string { return m.processID }
func (m Message) Kind() Kind        { return m.kind }

// IsZero reports whether m was never constructed.
func (m Message) IsZero() bool {
	return m == Message{}
}

func (m Message) String() string {
	return "msg=" + m.messageID + " pid=" + m.processID + " kind=" + m.kind.String()
}
