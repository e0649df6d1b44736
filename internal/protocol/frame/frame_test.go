package frame

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/danmuck/grantwire/internal/protocol"
)

func TestWriteReadMessageRoundTrip(t *testing.T) {
	in, err := protocol.NewMessage("7", "3", protocol.KindRelease)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteMessage(&buf, in); err != nil {
		t.Fatalf("write message: %v", err)
	}
	if buf.String() != "7|3|222222" {
		t.Fatalf("unexpected frame: %q", buf.String())
	}
	out, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if out != in {
		t.Fatalf("message mismatch: got=%s want=%s", out, in)
	}
}

func TestReadMessageCleanEOF(t *testing.T) {
	_, err := ReadMessage(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReadMessageShortFrame(t *testing.T) {
	_, err := ReadMessage(strings.NewReader("1|2|11"))
	if !errors.Is(err, ErrShortFrame) {
		t.Fatalf("expected ErrShortFrame, got %v", err)
	}
}

func TestReadMessageInvalidCode(t *testing.T) {
	_, err := ReadMessage(strings.NewReader("1|2|123456"))
	if !errors.Is(err, protocol.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestWriteMessageZeroMessage(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMessage(&buf, protocol.Message{})
	if !errors.Is(err, protocol.ErrLengthInvariant) {
		t.Fatalf("expected ErrLengthInvariant, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", buf.String())
	}
}

func TestReaderWriterStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	var sent []protocol.Message
	for i, kind := range []protocol.Kind{protocol.KindRequest, protocol.KindGrant, protocol.KindRelease} {
		msg, err := protocol.NewMessage(string(rune('1'+i)), "p", kind)
		if err != nil {
			t.Fatalf("new message: %v", err)
		}
		if err := w.Write(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		sent = append(sent, msg)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffered output before flush")
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if buf.String() != "1|p|1111112|p|0000003|p|222222" {
		t.Fatalf("unexpected stream: %q", buf.String())
	}

	r := NewReader(&buf)
	for i, want := range sent {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("read %d: got=%s want=%s", i, got, want)
		}
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Frames() != 3 || w.Frames() != 3 {
		t.Fatalf("unexpected frame counts: read=%d written=%d", r.Frames(), w.Frames())
	}
}
