package protocol

// NewMessage validates messageID, processID and kind, in that order.
func (c *Codec) NewMessage(messageID, processID string, kind Kind) (Message, error) {
	if err := ValidateField(FieldMessageID, messageID); err != nil {
		return Message{}, c.fail("new", err)
	}
	if err := ValidateField(FieldProcessID, processID); err != nil {
		return Message{}, c.fail("new", err)
	}
	if !kind.Valid() {
		return Message{}, c.fail("new", InvalidKindError{Value: kind.String()})
	}
	return Message{messageID: messageID, processID: processID, kind: kind}, nil
}

// ValidateField checks that a messageID or processID value is exactly one
// byte wide.
func ValidateField(field, value string) error {
	if len(value) != 1 {
		return FieldLengthError{Field: field, Length: len(value)}
	}
	return nil
}

// Encode returns the WireLen-byte wire form of msg.
func (c *Codec) Encode(msg Message) (string, error) {
	wire, err := assemble(msg.messageID, msg.processID, msg.kind.Code())
	if err != nil {
		return "", c.fail("encode", err)
	}
	return wire, nil
}

func assemble(messageID, processID, code string) (string, error) {
	buf := make([]byte, 0, WireLen)
	buf = append(buf, messageID...)
	buf = append(buf, Delimiter)
	buf = append(buf, processID...)
	buf = append(buf, Delimiter)
	buf = append(buf, code...)
	if len(buf) != WireLen {
		return "", LengthInvariantError{Length: len(buf)}
	}
	return string(buf), nil
}
