// Package frame moves fixed-width protocol messages over a byte stream.
// There is no length prefix: every frame is exactly protocol.WireLen bytes.
package frame

import (
	"bufio"
	"errors"
	"io"

	"github.com/danmuck/grantwire/internal/protocol"
)

var ErrShortFrame = errors.New("frame: short frame")

// WriteMessage encodes msg and writes exactly one frame to w.
func WriteMessage(w io.Writer, msg protocol.Message) error {
	wire, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, wire)
	return err
}

// ReadMessage reads exactly one frame from r and decodes it. A stream that
// ends cleanly before the first byte returns io.EOF.
func ReadMessage(r io.Reader) (protocol.Message, error) {
	var buf [protocol.WireLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return protocol.Message{}, ErrShortFrame
		}
		return protocol.Message{}, err
	}
	return protocol.Decode(string(buf[:]))
}

// Reader decodes frames from a buffered stream.
type Reader struct {
	br     *bufio.Reader
	frames uint64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Read returns the next message.
func (r *Reader) Read() (protocol.Message, error) {
	msg, err := ReadMessage(r.br)
	if err != nil {
		return protocol.Message{}, err
	}
	r.frames++
	return msg, nil
}

// Frames returns the number of messages read successfully.
func (r *Reader) Frames() uint64 { return r.frames }

// Writer encodes frames onto a buffered stream. Call Flush to push them out.
type Writer struct {
	bw     *bufio.Writer
	frames uint64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) Write(msg protocol.Message) error {
	if err := WriteMessage(w.bw, msg); err != nil {
		return err
	}
	w.frames++
	return nil
}

func (w *Writer) Flush() error { return w.bw.Flush() }

// Frames returns the number of messages written.
func (w *Writer) Frames() uint64 { return w.frames }
