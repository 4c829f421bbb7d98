package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: test\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Report.Dir != "." {
		t.Errorf("Report.Dir = %q, want %q", cfg.Report.Dir, ".")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Archive.Path != "vwap_archive.db" {
		t.Errorf("Archive.Path = %q", cfg.Archive.Path)
	}
	if cfg.Monitor.HandshakeTimeoutMS != 10000 {
		t.Errorf("Monitor.HandshakeTimeoutMS = %d, want 10000", cfg.Monitor.HandshakeTimeoutMS)
	}
}

func TestLoadConfig_MissingDefaultPathFallsBack(t *testing.T) {
	// Run from a directory without configs/config.yaml.
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadConfig(DefaultConfigPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Name != "ItchGo" {
		t.Errorf("App.Name = %q, want ItchGo", cfg.App.Name)
	}
}

func TestLoadConfig_MissingExplicitPathFails(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicitly named missing config must fail")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Monitor URL scheme", func(t *testing.T) {
		path := writeConfig(t, "monitor:\n  enabled: true\n  url: http://collector\n")
		if _, err := LoadConfig(path); err == nil {
			t.Error("non-websocket monitor URL must fail validation")
		}
	})

	t.Run("Logging level", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  level: verbose\n")
		if _, err := LoadConfig(path); err == nil {
			t.Error("unknown logging level must fail validation")
		}
	})

	t.Run("Valid monitor", func(t *testing.T) {
		path := writeConfig(t, "monitor:\n  enabled: true\n  url: wss://collector.example/ingest\n")
		if _, err := LoadConfig(path); err != nil {
			t.Errorf("valid config rejected: %v", err)
		}
	})
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ITCHGO_REPORT_DIR", "/tmp/reports")
	t.Setenv("ITCHGO_MONITOR_URL", "ws://other:9000")

	path := writeConfig(t, "report:\n  dir: ./out\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Report.Dir != "/tmp/reports" {
		t.Errorf("Report.Dir = %q, want env override", cfg.Report.Dir)
	}
	if cfg.Monitor.URL != "ws://other:9000" {
		t.Errorf("Monitor.URL = %q, want env override", cfg.Monitor.URL)
	}
}
