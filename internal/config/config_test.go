package config_test

import (
	"testing"
	"time"

	"github.com/pagelab/pagelab/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	cfg := &config.ServerConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %q, want %q", cfg.Addr(), "0.0.0.0:8080")
	}
	if cfg.BasePath != "/api" {
		t.Errorf("base path: got %q, want %q", cfg.BasePath, "/api")
	}
	if cfg.ReadTimeoutDuration() != 30*time.Second {
		t.Errorf("read timeout: got %v, want 30s", cfg.ReadTimeoutDuration())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestServerConfigEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServerHost, "127.0.0.1")
	t.Setenv(config.EnvServerPort, "9090")

	cfg := &config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("addr: got %q, want %q", cfg.Addr(), "127.0.0.1:9090")
	}
}

func TestServerConfigMerge(t *testing.T) {
	cfg := &config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	cfg.Merge(&config.ServerConfig{Port: 3000, ReadTimeout: "5s"})

	if cfg.Port != 3000 {
		t.Errorf("port: got %d, want 3000", cfg.Port)
	}
	if cfg.ReadTimeoutDuration() != 5*time.Second {
		t.Errorf("read timeout: got %v, want 5s", cfg.ReadTimeoutDuration())
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("host should keep its base value, got %q", cfg.Host)
	}
}

func TestServerConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ServerConfig
	}{
		{"port too large", config.ServerConfig{Port: 70000}},
		{"negative port", config.ServerConfig{Port: -1}},
		{"bad read timeout", config.ServerConfig{ReadTimeout: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStorageConfigDefaults(t *testing.T) {
	cfg := &config.StorageConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.BasePath != ".data/blobs" {
		t.Errorf("base path: got %q, want %q", cfg.BasePath, ".data/blobs")
	}
	if cfg.MaxUploadSizeBytes() != 100*1000*1000 {
		t.Errorf("max upload size: got %d, want %d", cfg.MaxUploadSizeBytes(), 100*1000*1000)
	}
}

func TestStorageConfigUploadSizes(t *testing.T) {
	tests := []struct {
		name    string
		size    string
		want    int64
		wantErr bool
	}{
		{"megabytes", "10MB", 10 * 1000 * 1000, false},
		{"gigabytes", "1GB", 1000 * 1000 * 1000, false},
		{"plain bytes", "2048", 2048, false},
		{"not a size", "plenty", 0, true},
		{"negative", "-5MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.StorageConfig{MaxUploadSize: tt.size}
			err := cfg.Finalize()

			if tt.wantErr {
				if err == nil {
					t.Error("expected validation error")
				}
				return
			}

			if err != nil {
				t.Fatalf("finalize: %v", err)
			}
			if cfg.MaxUploadSizeBytes() != tt.want {
				t.Errorf("got %d, want %d", cfg.MaxUploadSizeBytes(), tt.want)
			}
		})
	}
}
