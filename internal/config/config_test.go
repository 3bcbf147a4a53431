package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempSettings(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	original := SettingsFile
	SettingsFile = filepath.Join(dir, "settings.json")
	t.Cleanup(func() { SettingsFile = original })

	if content != "" {
		if err := os.WriteFile(SettingsFile, []byte(content), FilePermissions); err != nil {
			t.Fatalf("failed to write settings: %v", err)
		}
	}
}

func TestLoadSettings_Missing(t *testing.T) {
	useTempSettings(t, "")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Endpoint != "" || s.HistoryEnabled != nil {
		t.Errorf("expected zero settings, got %+v", s)
	}
}

func TestResolveEndpoint_Precedence(t *testing.T) {
	useTempSettings(t, `{"endpoint": "http://from-settings:8000/api"}`)

	t.Setenv(EndpointEnvVar, "http://from-env:8000/api")
	if got := ResolveEndpoint("http://from-flag:8000/api"); got != "http://from-flag:8000/api" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := ResolveEndpoint(""); got != "http://from-env:8000/api" {
		t.Errorf("env should win over settings, got %q", got)
	}

	t.Setenv(EndpointEnvVar, "")
	if got := ResolveEndpoint(""); got != "http://from-settings:8000/api" {
		t.Errorf("settings should win over default, got %q", got)
	}

	useTempSettings(t, "")
	if got := ResolveEndpoint(""); got != DefaultEndpoint {
		t.Errorf("expected default endpoint, got %q", got)
	}
}

func TestHistoryEnabled(t *testing.T) {
	if !HistoryEnabled(nil) {
		t.Error("nil settings should default to enabled")
	}
	if !HistoryEnabled(&Settings{}) {
		t.Error("unset flag should default to enabled")
	}

	disabled := false
	if HistoryEnabled(&Settings{HistoryEnabled: &disabled}) {
		t.Error("explicit false should disable history")
	}

	enabled := true
	if !HistoryEnabled(&Settings{HistoryEnabled: &enabled}) {
		t.Error("explicit true should enable history")
	}
}
