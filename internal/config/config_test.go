package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/grantwire/internal/protocol"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "node.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadNodeConfigTemplates(t *testing.T) {
	for _, kind := range []string{"node", "solo"} {
		path := filepath.Join(t.TempDir(), kind+".toml")
		if err := WriteTemplate(path, kind, false); err != nil {
			t.Fatalf("write template %s: %v", kind, err)
		}
		if _, err := LoadNodeConfig(path); err != nil {
			t.Fatalf("load template %s: %v", kind, err)
		}
	}
}

func TestLoadNodeConfigFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.toml")
	if err := WriteTemplate(path, "node", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadNodeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ProcessID != "1" || cfg.Listen != ":7071" {
		t.Fatalf("unexpected node: %+v", cfg)
	}
	if len(cfg.Peers) != 2 {
		t.Fatalf("unexpected peers: %+v", cfg.Peers)
	}
	peer, ok := cfg.Peer("3")
	if !ok || peer.Addr != "localhost:7073" {
		t.Fatalf("unexpected peer lookup: %+v %v", peer, ok)
	}
	if _, ok := cfg.Peer("9"); ok {
		t.Fatalf("unexpected peer 9")
	}
	if cfg.Log.Level != "info" || !cfg.Log.Timestamp {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadNodeConfigDefaults(t *testing.T) {
	cfg, err := LoadNodeConfig(writeConfig(t, `process_id = "7"`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != DefaultListen {
		t.Fatalf("unexpected listen: %q", cfg.Listen)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Fatalf("unexpected log level: %q", cfg.Log.Level)
	}
}

func TestLoadNodeConfigRejectsWideProcessID(t *testing.T) {
	_, err := LoadNodeConfig(writeConfig(t, `process_id = "12"`))
	if !errors.Is(err, protocol.ErrFieldLength) {
		t.Fatalf("expected ErrFieldLength, got %v", err)
	}
}

func TestLoadNodeConfigRejectsDuplicatePeer(t *testing.T) {
	content := `
process_id = "1"

[[peers]]
process_id = "2"
addr = "localhost:1"

[[peers]]
process_id = "2"
addr = "localhost:2"
`
	if _, err := LoadNodeConfig(writeConfig(t, content)); err == nil {
		t.Fatalf("expected duplicate peer error")
	}
}

func TestLoadNodeConfigRejectsSelfAsPeer(t *testing.T) {
	content := `
process_id = "1"

[[peers]]
process_id = "1"
addr = "localhost:1"
`
	if _, err := LoadNodeConfig(writeConfig(t, content)); err == nil {
		t.Fatalf("expected self peer error")
	}
}

func TestLoadNodeConfigRejectsMissingAddr(t *testing.T) {
	content := `
process_id = "1"

[[peers]]
process_id = "2"
`
	if _, err := LoadNodeConfig(writeConfig(t, content)); err == nil {
		t.Fatalf("expected missing addr error")
	}
}

func TestLoadNodeConfigParseError(t *testing.T) {
	if _, err := LoadNodeConfig(writeConfig(t, `process_id = `)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWriteTemplateNoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.toml")
	if err := WriteTemplate(path, "solo", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, "solo", false); err == nil {
		t.Fatalf("expected exists error")
	}
	if err := WriteTemplate(path, "node", true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
	if _, err := Template("ghost"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
