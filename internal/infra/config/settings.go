// Package config loads application settings from setting.json
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// RawSettings represents the structure of the setting.json file.
// Pointer fields distinguish "absent" from zero values.
type RawSettings struct {
	Home           *string `json:"home"`
	CatalogPath    *string `json:"catalog_path"`
	JournalPath    *string `json:"journal_path"`
	DisableJournal *bool   `json:"disable_journal"`
	StderrLevel    *string `json:"stderr_level"`
}

// Settings is the resolved application configuration
type Settings struct {
	Home           string // base directory, default ".agentstats"
	CatalogPath    string // empty selects the embedded catalog
	JournalPath    string // NDJSON submission journal
	DisableJournal bool
	StderrLevel    string // off|error|warn|info|debug
}

// LoadSettings loads configuration from <baseDir>/setting.json.
// Priority: setting.json > defaults. A missing file is not an error.
func LoadSettings(fs afero.Fs, baseDir string) (*Settings, error) {
	raw := &RawSettings{}

	jsonPath := filepath.Join(baseDir, "setting.json")
	if data, err := afero.ReadFile(fs, jsonPath); err == nil {
		if err := json.Unmarshal(data, raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
	}

	return resolve(raw, baseDir), nil
}

// resolve applies defaults for any nil fields
func resolve(raw *RawSettings, baseDir string) *Settings {
	s := &Settings{
		Home:        baseDir,
		StderrLevel: "warn",
	}
	if raw.Home != nil {
		s.Home = *raw.Home
	}
	if raw.CatalogPath != nil {
		s.CatalogPath = *raw.CatalogPath
	}
	if raw.JournalPath != nil {
		s.JournalPath = *raw.JournalPath
	} else {
		s.JournalPath = filepath.Join(s.Home, "var", "journal.ndjson")
	}
	if raw.DisableJournal != nil {
		s.DisableJournal = *raw.DisableJournal
	}
	if raw.StderrLevel != nil {
		s.StderrLevel = *raw.StderrLevel
	}
	return s
}
