package session

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/danmuck/grantwire/internal/auth"
	"github.com/danmuck/grantwire/internal/protocol"
	"github.com/rs/zerolog"
)

// Handler receives each decoded message along with the sender's address.
// It may be called from several goroutines at once.
type Handler func(remote string, msg protocol.Message)

// Listener accepts peer connections and decodes their message streams.
type Listener struct {
	cfg Config
	ln  net.Listener
	log zerolog.Logger
	val auth.Validator

	mu     sync.Mutex
	conns  map[*Conn]struct{}
	closed bool
}

func Listen(addr string, cfg Config, log zerolog.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return newListener(ln, cfg, log), nil
}

func newListener(ln net.Listener, cfg Config, log zerolog.Logger) *Listener {
	return &Listener{
		cfg:   cfg,
		ln:    ln,
		log:   log.With().Str("component", "session").Logger(),
		val:   auth.AllowAll,
		conns: make(map[*Conn]struct{}),
	}
}

// SetValidator restricts delivery to messages whose process id v admits.
// Call before Serve.
func (l *Listener) SetValidator(v auth.Validator) {
	l.val = v
}

func (l *Listener) Addr() string { return l.ln.Addr().String() }

// Close stops accepting and closes every open connection.
func (l *Listener) Close() error {
	err := l.ln.Close()
	l.mu.Lock()
	l.closed = true
	for c := range l.conns {
		_ = c.Close()
	}
	l.mu.Unlock()
	return err
}

// Serve accepts connections until ctx is done or the listener is closed.
// A connection that sends a malformed frame is dropped; others continue.
func (l *Listener) Serve(ctx context.Context, h Handler) error {
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		nc, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		c := newConn(nc, l.cfg)
		if !l.track(c, true) {
			// accepted while Close was sweeping conns
			_ = c.Close()
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer l.track(c, false)
			defer c.Close()
			l.readLoop(c, h)
		}()
	}
}

// track adds or removes c. Adding fails once the listener is closed.
func (l *Listener) track(c *Conn, add bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !add {
		delete(l.conns, c)
		return true
	}
	if l.closed {
		return false
	}
	l.conns[c] = struct{}{}
	return true
}

func (l *Listener) readLoop(c *Conn, h Handler) {
	remote := c.RemoteAddr()
	for {
		msg, err := c.Receive()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
				l.log.Debug().Str("remote", remote).Msg("peer closed")
			default:
				l.log.Warn().Err(err).Str("remote", remote).Msg("dropping peer")
			}
			return
		}
		if err := l.val.Validate(msg.ProcessID()); err != nil {
			l.log.Warn().Err(err).Str("remote", remote).Stringer("msg", msg).Msg("message refused")
			continue
		}
		l.log.Debug().Str("remote", remote).Stringer("msg", msg).Msg("received")
		h(remote, msg)
	}
}
