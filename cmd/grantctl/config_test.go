package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/grantwire/internal/protocol"
)

func TestLoadRunConfigExample(t *testing.T) {
	cfg, err := loadRunConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Node.ProcessID != "a" {
		t.Fatalf("unexpected process id: %q", cfg.Node.ProcessID)
	}
	if cfg.Node.Listen != "127.0.0.1:7071" {
		t.Fatalf("unexpected listen: %q", cfg.Node.Listen)
	}
	if peer, ok := cfg.Node.Peer("b"); !ok || peer.Addr != "127.0.0.1:7072" {
		t.Fatalf("unexpected peer: %+v %v", peer, ok)
	}
	if cfg.Session.DialTimeout != 2*time.Second {
		t.Fatalf("unexpected dial timeout: %v", cfg.Session.DialTimeout)
	}
	if cfg.Session.ReadTimeout != time.Minute {
		t.Fatalf("unexpected read timeout: %v", cfg.Session.ReadTimeout)
	}
	if cfg.Session.WriteTimeout != 5*time.Second {
		t.Fatalf("write timeout should keep default: %v", cfg.Session.WriteTimeout)
	}
	if cfg.Session.Backoff.InitialDelay != 50*time.Millisecond || cfg.Session.Backoff.MaxDelay != time.Second {
		t.Fatalf("unexpected backoff: %+v", cfg.Session.Backoff)
	}
	if cfg.Session.Backoff.Jitter {
		t.Fatalf("expected jitter disabled")
	}
	if cfg.Session.Backoff.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.Session.Backoff.MaxAttempts)
	}
}

func TestLoadRunConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grantctl.toml")
	if err := os.WriteFile(path, []byte(`dial_timeout = "soon"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRunConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadRunConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grantctl.toml")
	if err := os.WriteFile(path, []byte(`heartbeat = "1s"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRunConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestRunEncode(t *testing.T) {
	var out bytes.Buffer
	err := run(options{mode: "encode", messageID: "1", processID: "2", kind: "request"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "1|2|111111" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunEncodeInvalidKind(t *testing.T) {
	err := run(options{mode: "encode", messageID: "1", processID: "2", kind: "INVALID"}, &bytes.Buffer{})
	if !errors.Is(err, protocol.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestRunDecode(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{mode: "decode", wire: "3|4|222222"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "message_id=3 process_id=4 kind=RELEASE" {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if err := run(options{mode: "decode", wire: "12345678901"}, &out); !errors.Is(err, protocol.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestRunSendRequiresTarget(t *testing.T) {
	if err := run(options{mode: "send", messageID: "1", kind: "GRANT"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected missing target error")
	}
}

func TestRunUnknownMode(t *testing.T) {
	if err := run(options{mode: "relay"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}
