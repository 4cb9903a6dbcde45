package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("FITFOCUS_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("FITFOCUS_HOME", "/custom/fitfocus")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["base_dir"] != "/custom/fitfocus" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/fitfocus")
		}
		if defaults["log_dir"] != "/custom/fitfocus/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/fitfocus/log")
		}
		if defaults["env_file"] != "/custom/fitfocus/.env" {
			t.Errorf("env_file = %q, want %q", defaults["env_file"], "/custom/fitfocus/.env")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("FITFOCUS_CONFIG_PATH", "")
		t.Setenv("FITFOCUS_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		wantConfig := filepath.Join(homeDir, ".config", "fitfocus.toml")
		if defaults["config_path"] != wantConfig {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], wantConfig)
		}

		wantBase := filepath.Join(homeDir, ".local", "share", "fitfocus")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}

		wantLog := filepath.Join(wantBase, "log")
		if defaults["log_dir"] != wantLog {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], wantLog)
		}
	})
}
