package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatJSON SettingsFormat = "json"
)

// Output formats for the final bindings of a run.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const envConfigDir = "MINIPAS_CONFIG_DIR"

type Settings struct {
	Color  bool   `json:"color"  toml:"color"`
	Trace  bool   `json:"trace"  toml:"trace"`
	Format string `json:"format" toml:"format"`
}

type SettingsFormat string
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

func DefaultSettings() Settings {
	return Settings{Color: true, Format: OutputText}
}

// Dir is the directory searched by LoadSettings.
func Dir() string {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "minipas")
	}
	return ".minipas"
}

// tries loading TOML first, then JSON, then returns defaults if neither exists.
// parse errors fail immediately but missing files just skip to the next format.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()
	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, "settings.toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, "settings.json"), Format: SettingsFormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		settings, err := load(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			var perr *parseError
			if errors.As(err, &perr) {
				return Settings{}, SettingsHandle{}, err
			}
			accumulated = errors.Join(accumulated, err)
			continue
		}
		return settings, candidate, nil
	}

	if accumulated != nil {
		return Settings{}, SettingsHandle{}, accumulated
	}
	return DefaultSettings(), candidates[0], nil
}

// LoadFile reads an explicit settings file. The format follows the extension.
func LoadFile(path string) (Settings, error) {
	var format SettingsFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = SettingsFormatTOML
	case ".json":
		format = SettingsFormatJSON
	default:
		return Settings{}, fmt.Errorf("settings %q: unsupported extension %q", path, filepath.Ext(path))
	}
	return load(SettingsHandle{Path: path, Format: format})
}

type parseError struct {
	path string
	err  error
}

func (e *parseError) Error() string { return fmt.Sprintf("parse settings %q: %v", e.path, e.err) }

func (e *parseError) Unwrap() error { return e.err }

func load(handle SettingsHandle) (Settings, error) {
	data, err := os.ReadFile(handle.Path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %q: %w", handle.Path, err)
	}
	settings, err := decodeSettings(data, handle.Format)
	if err != nil {
		return Settings{}, &parseError{path: handle.Path, err: err}
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, &parseError{path: handle.Path, err: err}
	}
	return settings, nil
}

func decodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	settings := DefaultSettings()
	switch format {
	case SettingsFormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	case SettingsFormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	return settings, nil
}

// Validate rejects unknown output formats.
func (s Settings) Validate() error {
	switch s.Format {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", s.Format)
	}
}
