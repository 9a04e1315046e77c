package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}

	if cfg.User != "local" {
		t.Errorf("expected default user %q, got %q", "local", cfg.User)
	}
	if !cfg.Notify {
		t.Error("expected notify enabled by default")
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.TokenTTLHours != 24 {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `database: /tmp/custom.db
user: aidana
notify: false
server:
  addr: ":9090"
  jwt_secret: sekret
  token_ttl_hours: 72
`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database != "/tmp/custom.db" {
		t.Errorf("expected custom database path, got %q", cfg.Database)
	}
	if cfg.User != "aidana" {
		t.Errorf("expected user aidana, got %q", cfg.User)
	}
	if cfg.Notify {
		t.Error("expected notify disabled")
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.JWTSecret != "sekret" || cfg.Server.TokenTTLHours != 72 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("user: dana\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.User != "dana" {
		t.Errorf("expected user dana, got %q", cfg.User)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr kept, got %q", cfg.Server.Addr)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.User = "roundtrip"
	cfg.Server.JWTSecret = "s3cr3t"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.User != "roundtrip" || loaded.Server.JWTSecret != "s3cr3t" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
