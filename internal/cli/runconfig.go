package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/vk/netgridgo/internal/app"
)

// fileConfig maps run.toml keys to app configuration fields.
type fileConfig struct {
	Model     string   `toml:"model"`
	Weights   string   `toml:"weights"`
	Save      string   `toml:"save"`
	Phase     string   `toml:"phase"`
	Stages    []string `toml:"stages"`
	Level     int      `toml:"level"`
	LogFormat string   `toml:"log_format"`
	LogLevel  string   `toml:"log_level"`
	Trace     bool     `toml:"trace"`
}

// loadRunConfig reads a TOML run-configuration file into an app.Config.
func loadRunConfig(path string) (*app.Config, error) {
	var raw fileConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load run config %s: %w", path, err)
	}
	return &app.Config{
		ModelPath:   raw.Model,
		WeightsPath: raw.Weights,
		SavePath:    raw.Save,
		Phase:       raw.Phase,
		Stages:      raw.Stages,
		Level:       raw.Level,
		LogFormat:   raw.LogFormat,
		LogLevel:    raw.LogLevel,
		Trace:       raw.Trace,
	}, nil
}
