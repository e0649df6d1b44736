package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/grantwire/internal/protocol"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultListen   = ":7070"
	DefaultLogLevel = "info"
)

// NodeConfig describes one participating process and the peers it talks to.
type NodeConfig struct {
	ProcessID string       `toml:"process_id"`
	Listen    string       `toml:"listen"`
	Peers     []PeerConfig `toml:"peers"`
	Log       LogConfig    `toml:"log"`
}

type PeerConfig struct {
	ProcessID string `toml:"process_id"`
	Addr      string `toml:"addr"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

func LoadNodeConfig(path string) (NodeConfig, error) {
	var cfg NodeConfig
	if err := loadToml(path, &cfg); err != nil {
		return NodeConfig{}, err
	}
	cfg.ApplyDefaults()
	if err := ValidateNodeConfig(cfg); err != nil {
		return NodeConfig{}, err
	}
	return cfg, nil
}

func (cfg *NodeConfig) ApplyDefaults() {
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = DefaultListen
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// Peer returns the peer registered under processID.
func (cfg NodeConfig) Peer(processID string) (PeerConfig, bool) {
	for _, p := range cfg.Peers {
		if p.ProcessID == processID {
			return p, true
		}
	}
	return PeerConfig{}, false
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateNodeConfig(cfg NodeConfig) error {
	if err := protocol.ValidateField(protocol.FieldProcessID, cfg.ProcessID); err != nil {
		return fmt.Errorf("node config process_id: %w", err)
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		return fmt.Errorf("node config missing listen")
	}
	seen := map[string]struct{}{cfg.ProcessID: {}}
	for i, peer := range cfg.Peers {
		if err := ValidatePeerEntry(peer); err != nil {
			return fmt.Errorf("peer[%d] invalid: %w", i, err)
		}
		if _, dup := seen[peer.ProcessID]; dup {
			return fmt.Errorf("peer[%d] invalid: duplicate process_id %q", i, peer.ProcessID)
		}
		seen[peer.ProcessID] = struct{}{}
	}
	return nil
}

func ValidatePeerEntry(cfg PeerConfig) error {
	if err := protocol.ValidateField(protocol.FieldProcessID, cfg.ProcessID); err != nil {
		return fmt.Errorf("process_id: %w", err)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}
