package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "8080" || cfg.SubActivityCacheTTL != 10*time.Minute || cfg.PriceListExpirySpec != "@hourly" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.AllowSameLocationTrips || cfg.MaxRequestsPerMin != 200 {
		t.Fatalf("unexpected policy defaults: %+v", cfg)
	}
}

func TestLoadReadsFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "APP_PORT: \"9090\"\nALLOW_SAME_LOCATION_TRIPS: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MAX_REQUESTS_PER_MIN", "30")
	t.Setenv("SUB_ACTIVITY_CACHE_TTL", "90s")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "9090" || cfg.AllowSameLocationTrips {
		t.Fatalf("config file ignored: %+v", cfg)
	}
	if cfg.MaxRequestsPerMin != 30 || cfg.SubActivityCacheTTL != 90*time.Second {
		t.Fatalf("environment ignored: %+v", cfg)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
