package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
metrics_addr: ":9100"
bindings:
  - name: kitchen-display
    queue_num: 10
    max_queue_len: 1024
    num_policies: 4
    num_states: 3
    timeout_seconds: 120
    activity_start: "0 9 * *"
    activity_duration: "0 1 * *"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("got metrics addr %q", cfg.MetricsAddr)
	}
	if len(cfg.Bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(cfg.Bindings))
	}
	b := cfg.Bindings[0]
	if b.Name != "kitchen-display" || b.QueueNum != 10 || b.NumPolicies != 4 {
		t.Errorf("unexpected binding: %+v", b)
	}
}

func TestLoadConfigRejectsEmptyBindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("metrics_addr: \":9100\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for a config with no bindings")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
