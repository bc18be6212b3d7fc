// Package node holds the daemon-wide configuration shared by cmd/agentd,
// kept close to the teacher's original node.Config/DefaultConfig/
// ValidateConfig shape (node/config.go) and narrowed to what this daemon
// actually binds: a listen address, a data directory for the optional
// ledger archive, a log level, and the starting operating profile.
package node

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// Config is the daemon's startup configuration.
type Config struct {
	ListenAddr string `json:"listen_addr" mapstructure:"listen_addr"`
	DataDir    string `json:"data_dir" mapstructure:"data_dir"`
	LogLevel   string `json:"log_level" mapstructure:"log_level"`
	Profile    string `json:"profile" mapstructure:"profile"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var allowedProfiles = map[string]struct{}{
	"research":   {},
	"production": {},
}

// DefaultDataDir returns $HOME/.agentd, falling back to a relative
// directory when the home directory can't be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".agentd"
	}
	return filepath.Join(home, ".agentd")
}

// DefaultConfig returns the daemon's default startup configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr: "0.0.0.0:5005",
		DataDir:    DefaultDataDir(),
		LogLevel:   "info",
		Profile:    "research",
	}
}

// ValidateConfig rejects a Config that would produce undefined daemon
// behavior at startup.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if err := validateAddr(cfg.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen_addr: %w", err)
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	profile := strings.ToLower(strings.TrimSpace(cfg.Profile))
	if _, ok := allowedProfiles[profile]; !ok {
		return fmt.Errorf("invalid profile %q", cfg.Profile)
	}
	return nil
}

func validateAddr(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("empty address")
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if strings.TrimSpace(port) == "" {
		return errors.New("missing port")
	}
	if strings.Contains(host, " ") {
		return errors.New("invalid host")
	}
	return nil
}
