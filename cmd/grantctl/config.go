package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/grantwire/internal/config"
	"github.com/danmuck/grantwire/internal/protocol/session"
)

type fileConfig struct {
	NodeConfig        string  `toml:"node_config"`
	DialTimeout       string  `toml:"dial_timeout"`
	ReadTimeout       string  `toml:"read_timeout"`
	WriteTimeout      string  `toml:"write_timeout"`
	BackoffInitial    string  `toml:"backoff_initial"`
	BackoffMax        string  `toml:"backoff_max"`
	BackoffMultiplier float64 `toml:"backoff_multiplier"`
	BackoffJitter     bool    `toml:"backoff_jitter"`
	MaxDialAttempts   int     `toml:"max_dial_attempts"`
}

// runConfig is everything grantctl needs besides flags.
type runConfig struct {
	Node    config.NodeConfig
	Session session.Config
}

func defaultRunConfig() runConfig {
	node := config.NodeConfig{ProcessID: "1"}
	node.ApplyDefaults()
	return runConfig{Node: node, Session: session.DefaultConfig()}
}

// loadRunConfig applies the overrides in path on top of the defaults. A
// relative node_config is resolved against the directory holding path.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load grantctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return runConfig{}, fmt.Errorf("load grantctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("node_config") {
		nodePath := strings.TrimSpace(raw.NodeConfig)
		if !filepath.IsAbs(nodePath) {
			nodePath = filepath.Join(filepath.Dir(path), nodePath)
		}
		node, err := config.LoadNodeConfig(nodePath)
		if err != nil {
			return runConfig{}, err
		}
		cfg.Node = node
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"dial_timeout", raw.DialTimeout, &cfg.Session.DialTimeout},
		{"read_timeout", raw.ReadTimeout, &cfg.Session.ReadTimeout},
		{"write_timeout", raw.WriteTimeout, &cfg.Session.WriteTimeout},
		{"backoff_initial", raw.BackoffInitial, &cfg.Session.Backoff.InitialDelay},
		{"backoff_max", raw.BackoffMax, &cfg.Session.Backoff.MaxDelay},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return runConfig{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if meta.IsDefined("backoff_multiplier") {
		cfg.Session.Backoff.Multiplier = raw.BackoffMultiplier
	}
	if meta.IsDefined("backoff_jitter") {
		cfg.Session.Backoff.Jitter = raw.BackoffJitter
	}
	if meta.IsDefined("max_dial_attempts") {
		cfg.Session.Backoff.MaxAttempts = raw.MaxDialAttempts
	}

	return cfg, nil
}
