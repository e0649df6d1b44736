package protocol

// Decode parses wire into a new message. The input must be exactly WireLen
// bytes with the delimiter at offsets 1 and 3. Segments are taken by offset,
// so a messageID or processID of "|" survives a round trip.
func (c *Codec) Decode(wire string) (Message, error) {
	if len(wire) != WireLen {
		return Message{}, c.fail("decode", LengthMismatchError{Length: len(wire)})
	}
	if wire[1] != Delimiter || wire[3] != Delimiter {
		return Message{}, c.fail("decode", MalformedError{Wire: wire})
	}

	messageID, processID, code := wire[0:1], wire[2:3], wire[4:]
	kind, ok := KindFromCode(code)
	if !ok {
		return Message{}, c.fail("decode", InvalidKindError{Value: code})
	}
	return Message{messageID: messageID, processID: processID, kind: kind}, nil
}
