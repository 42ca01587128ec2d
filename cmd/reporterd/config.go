package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/reportctl/internal/receiver"
)

type daemonConfig struct {
	Address      string
	AdminAddress string
}

type fileConfig struct {
	Address      string `toml:"address"`
	AdminAddress string `toml:"admin_address"`
}

func defaultDaemonConfig() daemonConfig {
	return daemonConfig{
		Address:      receiver.DefaultAddress,
		AdminAddress: "",
	}
}

func loadDaemonConfig(path string) (daemonConfig, error) {
	cfg := defaultDaemonConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return daemonConfig{}, fmt.Errorf("load reporterd config: %w", err)
	}

	if meta.IsDefined("address") {
		addr := strings.TrimSpace(raw.Address)
		if addr != "" {
			cfg.Address = addr
		}
	}
	if meta.IsDefined("admin_address") {
		cfg.AdminAddress = strings.TrimSpace(raw.AdminAddress)
	}

	return cfg, nil
}
