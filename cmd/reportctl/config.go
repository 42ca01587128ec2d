package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/reportctl/internal/connector"
)

type fileConfig struct {
	Address         string `toml:"address"`
	ConnectAttempts int    `toml:"connect_attempts"`
	RetryDelay      string `toml:"retry_delay"`
	WarmupDelay     string `toml:"warmup_delay"`
	SpawnReceiver   bool   `toml:"spawn_receiver"`
	Receiver        string `toml:"receiver"`
	ReceiverDir     string `toml:"receiver_dir"`
	ConnectTimeout  string `toml:"connect_timeout"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
}

func loadConnectorConfig(path string) (connector.Config, error) {
	cfg := connector.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return connector.Config{}, fmt.Errorf("load connector config: %w", err)
	}

	if meta.IsDefined("address") {
		addr := strings.TrimSpace(raw.Address)
		if addr != "" {
			cfg.Address = addr
		}
	}
	if meta.IsDefined("connect_attempts") {
		if raw.ConnectAttempts <= 0 {
			return connector.Config{}, fmt.Errorf("connect_attempts must be positive, got %d", raw.ConnectAttempts)
		}
		cfg.ConnectAttempts = raw.ConnectAttempts
	}
	if meta.IsDefined("retry_delay") {
		d, err := parseDelay(raw.RetryDelay)
		if err != nil {
			return connector.Config{}, fmt.Errorf("parse retry_delay: %w", err)
		}
		cfg.RetryDelay = d
	}
	if meta.IsDefined("warmup_delay") {
		d, err := parseDelay(raw.WarmupDelay)
		if err != nil {
			return connector.Config{}, fmt.Errorf("parse warmup_delay: %w", err)
		}
		cfg.WarmupDelay = d
	}
	if meta.IsDefined("spawn_receiver") {
		cfg.SpawnReceiver = raw.SpawnReceiver
	}
	if meta.IsDefined("receiver") {
		name := strings.TrimSpace(raw.Receiver)
		if name != "" {
			cfg.ReceiverName = name
		}
	}
	if meta.IsDefined("receiver_dir") {
		cfg.Dir = strings.TrimSpace(raw.ReceiverDir)
	}
	if meta.IsDefined("connect_timeout") {
		d, err := parseDelay(raw.ConnectTimeout)
		if err != nil {
			return connector.Config{}, fmt.Errorf("parse connect_timeout: %w", err)
		}
		cfg.ConnectTimeout = d
	}
	if meta.IsDefined("read_timeout") {
		d, err := parseDelay(raw.ReadTimeout)
		if err != nil {
			return connector.Config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("write_timeout") {
		d, err := parseDelay(raw.WriteTimeout)
		if err != nil {
			return connector.Config{}, fmt.Errorf("parse write_timeout: %w", err)
		}
		cfg.WriteTimeout = d
	}

	return cfg, nil
}

func parseDelay(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %v", d)
	}
	return d, nil
}
