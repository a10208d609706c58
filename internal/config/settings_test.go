package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadSettingsReturnsDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	expectedPath := filepath.Join(dir, "settings.toml")
	if handle.Path != expectedPath {
		t.Fatalf("expected handle path %q, got %q", expectedPath, handle.Path)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q, got %q", SettingsFormatTOML, handle.Format)
	}
	if settings != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.toml"), "trace = true\nformat = \"yaml\"\n")

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q, got %q", SettingsFormatTOML, handle.Format)
	}
	if !settings.Trace || settings.Format != OutputYAML {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if !settings.Color {
		t.Fatalf("expected color to keep its default")
	}
}

func TestLoadSettingsFallsBackToJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.json"), `{"color": false, "format": "json"}`)

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if handle.Format != SettingsFormatJSON {
		t.Fatalf("expected format %q, got %q", SettingsFormatJSON, handle.Format)
	}
	if settings.Color || settings.Format != OutputJSON {
		t.Fatalf("unexpected settings %+v", settings)
	}
}

func TestLoadSettingsParseErrorFailsImmediately(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.toml"), "trace = [")
	writeFile(t, filepath.Join(dir, "settings.json"), `{"trace": true}`)

	if _, _, err := LoadSettings(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadSettingsRejectsUnknownJSONField(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.json"), `{"colour": true}`)

	if _, _, err := LoadSettings(); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadSettingsRejectsUnknownTOMLKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.toml"), "colour = false\n")

	if _, _, err := LoadSettings(); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadSettingsRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIPAS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "settings.toml"), "format = \"xml\"\n")

	_, _, err := LoadSettings()
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "color = false\n")

	settings, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if settings.Color {
		t.Fatalf("expected color disabled")
	}
	if settings.Format != OutputText {
		t.Fatalf("expected default format, got %q", settings.Format)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "settings.ini")); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDirPrefersEnvironment(t *testing.T) {
	t.Setenv("MINIPAS_CONFIG_DIR", "/tmp/minipas-test")
	if got := Dir(); got != "/tmp/minipas-test" {
		t.Fatalf("expected env dir, got %q", got)
	}
}
