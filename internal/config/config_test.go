package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MATHQUEST_LLM_PROVIDER", "mock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Port)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "mathquest.db" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MATHQUEST_LLM_PROVIDER", "mock")
	t.Setenv("MATHQUEST_PORT", "9090")
	t.Setenv("MATHQUEST_DB_DRIVER", "postgres")
	t.Setenv("MATHQUEST_DB_DSN", "host=localhost dbname=mathquest")
	t.Setenv("MATHQUEST_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.Port)
	}
	if cfg.Store.Driver != "postgres" {
		t.Fatalf("driver = %q", cfg.Store.Driver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MATHQUEST_LLM_PROVIDER", "mock")

	t.Setenv("MATHQUEST_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad port")
	}

	t.Setenv("MATHQUEST_PORT", "8080")
	t.Setenv("MATHQUEST_DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
