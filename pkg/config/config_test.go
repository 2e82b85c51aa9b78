package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
environment: test
mode: batch
data:
  dir: ./data
  format: sff
output:
  backend: csv
  path: tables/out.csv
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Search.MinPeriod != 0.1 || c.Search.MaxPeriod != 70 {
		t.Fatalf("unexpected search range [%g, %g]", c.Search.MinPeriod, c.Search.MaxPeriod)
	}
	if c.Search.Order != 100 || c.Search.ThresholdScale != 2 || c.Search.MaxSigPeriod != 35 {
		t.Fatalf("unexpected search defaults %+v", c.Search)
	}
	if c.Checkpoint.Backend != "memory" {
		t.Fatalf("unexpected checkpoint backend %q", c.Checkpoint.Backend)
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	c, err := Load(writeConfig(t, `
environment: test
mode: batch
data:
  format: sff
output:
  backend: postgres
`))
	if err == nil {
		t.Fatalf("expected error, got config %+v", c)
	}
}

func TestLoadRejectsWorkerWithoutBrokers(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
mode: worker
data:
  format: sc
output:
  backend: kafka
`))
	if err == nil {
		t.Fatalf("expected error for worker mode without brokers")
	}
}
