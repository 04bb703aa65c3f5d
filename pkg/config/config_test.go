package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("default backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "svg" {
		t.Errorf("default formats = %v", cfg.Render.Formats)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
backend = "redis"
redis_addr = "cache.internal:6379"

[server]
addr = ":9090"

[render]
formats = ["svg", "text"]
cell_width = 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("redis addr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Render.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Render.Formats)
	}
	if cfg.Render.CellWidth != 100 {
		t.Errorf("cell width = %d", cfg.Render.CellWidth)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want default", cfg.Cache.Backend)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("MalformedTOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("[cache\nbackend = "), 0644)
		if _, err := LoadFile(path); err == nil {
			t.Error("malformed file should fail")
		}
	})

	t.Run("BadBackend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0644)
		if _, err := LoadFile(path); err == nil {
			t.Error("unknown backend should fail")
		}
	})
}

func TestPath(t *testing.T) {
	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/tmp/custom.toml")
		p, err := Path()
		if err != nil {
			t.Fatal(err)
		}
		if p != "/tmp/custom.toml" {
			t.Errorf("path = %q", p)
		}
	})

	t.Run("XDG", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		p, err := Path()
		if err != nil {
			t.Fatal(err)
		}
		if p != filepath.Join("/tmp/xdg", "treeline", "config.toml") {
			t.Errorf("path = %q", p)
		}
	})
}
