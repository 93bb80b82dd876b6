package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file: a metrics listener
// address and a list of per-interaction queue bindings.
type Config struct {
	MetricsAddr string          `yaml:"metrics_addr"`
	Bindings    []BindingConfig `yaml:"bindings"`
}

// BindingConfig describes one nfqueue binding and the interaction
// state it drives.
type BindingConfig struct {
	Name           string `yaml:"name"`
	QueueNum       uint16 `yaml:"queue_num"`
	MaxQueueLen    uint32 `yaml:"max_queue_len"`
	NumPolicies    int    `yaml:"num_policies"`
	NumStates      int    `yaml:"num_states"`
	TimeoutSeconds int64  `yaml:"timeout_seconds"`
	RunAsUID       int    `yaml:"run_as_uid"`
	RunAsGID       int    `yaml:"run_as_gid"`
	SecurityCtx    string `yaml:"security_context"`

	// ActivityPeriod is optional; both fields must be set together.
	ActivityStart    string `yaml:"activity_start"`
	ActivityDuration string `yaml:"activity_duration"`
}

// LoadConfig reads and parses the YAML configuration at path.
func LoadConfig(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Bindings) == 0 {
		return Config{}, fmt.Errorf("config %s: no bindings defined", path)
	}
	return cfg, nil
}
