package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultReportTemplate renders the post-import summary. Overridable by
// dropping a report_template.txt next to config.toml.
const DefaultReportTemplate = `Imported {{inserted}} of {{total}} rows from {{source}}.
{{#failed}}{{failed}} row(s) failed; see the error list above.{{/failed}}
{{#geocoded}}Geocoded {{geocoded}} location(s){{#geocode_failed}}, {{geocode_failed}} lookup(s) failed{{/geocode_failed}}.{{/geocoded}}
Vessels found: {{vessels}}`

type Config struct {
	DatabasePath   string
	Backend        string // "sqlite" or "memory"
	GeocoderURL    string // empty means the public Nominatim endpoint
	GeocodeDelay   time.Duration
	ReportTemplate string
}

type tomlConfig struct {
	DatabasePath        string `toml:"database_path"`
	Backend             string `toml:"backend"`
	GeocoderURL         string `toml:"geocoder_url"`
	GeocodeDelaySeconds int    `toml:"geocode_delay_seconds"`
}

// Load reads config from ~/.config/pufflog/
func Load() (*Config, error) {
	cfg := &Config{
		Backend:        "sqlite",
		GeocodeDelay:   time.Second,
		ReportTemplate: DefaultReportTemplate,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "pufflog")
	cfg.DatabasePath = filepath.Join(configDir, "pufflog.db")

	tomlPath := filepath.Join(configDir, "config.toml")
	templatePath := filepath.Join(configDir, "report_template.txt")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.DatabasePath != "" {
				cfg.DatabasePath = tc.DatabasePath
			}
			if tc.Backend != "" {
				cfg.Backend = tc.Backend
			}
			cfg.GeocoderURL = tc.GeocoderURL
			if tc.GeocodeDelaySeconds > 0 {
				cfg.GeocodeDelay = time.Duration(tc.GeocodeDelaySeconds) * time.Second
			}
		}
	}

	// If custom template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ReportTemplate = string(data)
	}

	return cfg, nil
}
