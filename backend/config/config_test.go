package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.HTTP.Port)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("db driver = %q, want sqlite", cfg.DB.Driver)
	}
	if cfg.Queue.Backend != "db" {
		t.Errorf("queue backend = %q, want db", cfg.Queue.Backend)
	}
	if cfg.PresenceWindow() != 30*time.Second {
		t.Errorf("presence window = %v, want 30s", cfg.PresenceWindow())
	}
	if cfg.Registry.PurgeAfter != 0 {
		t.Errorf("purge_after = %v, want disabled", cfg.Registry.PurgeAfter)
	}
	if cfg.AgentToken() == "" {
		t.Error("agent token empty")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	body := `
relay:
  host: 127.0.0.1
  port: 9100
  agent_token: sekrit
  db:
    driver: mysql
    host: db.internal
    name: relay_prod
  queue:
    backend: redis
    redis_addr: cache.internal:6379
  registry:
    presence_window: 45s
    purge_after: 72h
  jwt:
    secret: prod-secret
    exp_min: 15
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Host != "127.0.0.1" || cfg.HTTP.Port != 9100 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.DB.Driver != "mysql" || cfg.DB.Host != "db.internal" || cfg.DB.Name != "relay_prod" {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.DB.Port != 3306 {
		t.Errorf("db port lost its default: %d", cfg.DB.Port)
	}
	if cfg.Queue.Backend != "redis" || cfg.Queue.RedisAddr != "cache.internal:6379" {
		t.Errorf("queue = %+v", cfg.Queue)
	}
	if cfg.AgentToken() != "sekrit" {
		t.Errorf("agent token = %q", cfg.AgentToken())
	}
	if cfg.PresenceWindow() != 45*time.Second {
		t.Errorf("presence window = %v", cfg.PresenceWindow())
	}
	if cfg.Registry.PurgeAfter != 72*time.Hour {
		t.Errorf("purge_after = %v", cfg.Registry.PurgeAfter)
	}
	if cfg.JWT.Secret != "prod-secret" || cfg.JWT.ExpMin != 15 {
		t.Errorf("jwt = %+v", cfg.JWT)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte("relay: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestReloadableValuesAreHotSwappable(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.setReloadable("rotated", 90*time.Second)
	if cfg.AgentToken() != "rotated" {
		t.Errorf("agent token = %q after rotation", cfg.AgentToken())
	}
	if cfg.PresenceWindow() != 90*time.Second {
		t.Errorf("presence window = %v after change", cfg.PresenceWindow())
	}
}
