package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/danmuck/grantwire/internal/protocol"
	"github.com/danmuck/grantwire/internal/protocol/frame"
	"github.com/rs/zerolog"
)

var ErrDialExhausted = errors.New("session: dial attempts exhausted")

// Conn is one peer connection carrying protocol messages.
type Conn struct {
	cfg  Config
	conn net.Conn
	r    *frame.Reader

	mu sync.Mutex // serializes writes
}

func newConn(c net.Conn, cfg Config) *Conn {
	return &Conn{cfg: cfg, conn: c, r: frame.NewReader(c)}
}

// Dial connects to addr, retrying with backoff until it succeeds, the
// configured attempts run out, or ctx is done.
func Dial(ctx context.Context, addr string, cfg Config, log zerolog.Logger) (*Conn, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	var lastErr error
	for attempt := 1; cfg.Backoff.attemptsLeft(attempt - 1); attempt++ {
		c, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			log.Debug().Str("addr", addr).Int("attempt", attempt).Msg("dialed peer")
			return newConn(c, cfg), nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !cfg.Backoff.attemptsLeft(attempt) {
			break
		}
		delay := NextBackoffDelay(cfg.Backoff, attempt, rng)
		log.Warn().Err(err).Str("addr", addr).Int("attempt", attempt).Dur("retry_in", delay).Msg("dial failed")
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrDialExhausted, addr, lastErr)
}

// Send writes one message. Safe for concurrent use.
func (c *Conn) Send(msg protocol.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	return frame.WriteMessage(c.conn, msg)
}

// Receive blocks for the next message. Not safe for concurrent use.
func (c *Conn) Receive() (protocol.Message, error) {
	if c.cfg.ReadTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
			return protocol.Message{}, err
		}
	}
	return c.r.Read()
}

func (c *Conn) RemoteAddr() string { return c.conn.RemoteAddr().String() }

func (c *Conn) Close() error { return c.conn.Close() }
