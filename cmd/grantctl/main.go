package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/grantwire/internal/auth"
	"github.com/danmuck/grantwire/internal/logging"
	"github.com/danmuck/grantwire/internal/protocol"
	"github.com/danmuck/grantwire/internal/protocol/session"
	"github.com/rs/zerolog"
)

type options struct {
	mode      string
	config    string
	messageID string
	processID string
	kind      string
	wire      string
	addr      string
	to        string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "encode", "mode: encode | decode | listen | send")
	flag.StringVar(&opts.config, "config", "", "grantctl config file (toml)")
	flag.StringVar(&opts.messageID, "id", "1", "message id (1 byte)")
	flag.StringVar(&opts.processID, "pid", "", "process id (1 byte, defaults to the node's)")
	flag.StringVar(&opts.kind, "kind", "REQUEST", "message kind: REQUEST | RELEASE | GRANT")
	flag.StringVar(&opts.wire, "wire", "", "wire message to decode")
	flag.StringVar(&opts.addr, "addr", "", "listen or peer address (overrides config)")
	flag.StringVar(&opts.to, "to", "", "peer process id to send to (resolved from config)")
	flag.Parse()

	logging.ConfigureRuntime()
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "grantctl: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	cfg := defaultRunConfig()
	if opts.config != "" {
		loaded, err := loadRunConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
		applyLogConfig(cfg)
	}

	log := logging.New("grantctl")
	protocol.SetLogger(log)

	if opts.processID == "" {
		opts.processID = cfg.Node.ProcessID
	}

	switch opts.mode {
	case "encode":
		msg, err := buildMessage(opts)
		if err != nil {
			return err
		}
		wire, err := msg.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, wire)
		return nil
	case "decode":
		msg, err := protocol.Decode(opts.wire)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "message_id=%s process_id=%s kind=%s\n", msg.MessageID(), msg.ProcessID(), msg.Kind())
		return nil
	case "listen":
		return listen(cfg, opts, log, out)
	case "send":
		return send(cfg, opts, log)
	default:
		return fmt.Errorf("unknown mode: %s", opts.mode)
	}
}

func applyLogConfig(cfg runConfig) {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.Node.Log.Level); ok {
		lc.Level = lvl
	}
	lc.Timestamp = cfg.Node.Log.Timestamp
	lc.NoColor = cfg.Node.Log.NoColor
	logging.ApplyEnvOverrides(&lc)
	logging.Apply(lc)
}

func buildMessage(opts options) (protocol.Message, error) {
	kind, err := protocol.ParseKind(opts.kind)
	if err != nil {
		return protocol.Message{}, err
	}
	return protocol.NewMessage(opts.messageID, opts.processID, kind)
}

func listen(cfg runConfig, opts options, log zerolog.Logger, out io.Writer) error {
	addr := cfg.Node.Listen
	if opts.addr != "" {
		addr = opts.addr
	}
	ln, err := session.Listen(addr, cfg.Session, log)
	if err != nil {
		return err
	}
	if len(cfg.Node.Peers) > 0 {
		ids := make([]string, 0, len(cfg.Node.Peers))
		for _, p := range cfg.Node.Peers {
			ids = append(ids, p.ProcessID)
		}
		ln.SetValidator(auth.NewPeerSet(ids...))
	}
	log.Info().Str("addr", ln.Addr()).Str("process_id", cfg.Node.ProcessID).Msg("listening")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = ln.Serve(ctx, func(remote string, msg protocol.Message) {
		fmt.Fprintf(out, "%s %s %s %s\n", remote, msg.MessageID(), msg.ProcessID(), msg.Kind())
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func send(cfg runConfig, opts options, log zerolog.Logger) error {
	addr := opts.addr
	if addr == "" && opts.to != "" {
		peer, ok := cfg.Node.Peer(opts.to)
		if !ok {
			return fmt.Errorf("unknown peer process id: %q", opts.to)
		}
		addr = peer.Addr
	}
	if addr == "" {
		return errors.New("send requires -addr or -to")
	}
	msg, err := buildMessage(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	conn, err := session.Dial(ctx, addr, cfg.Session, log)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := conn.Send(msg); err != nil {
		return err
	}
	log.Info().Str("addr", addr).Stringer("msg", msg).Msg("sent")
	return nil
}
