package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/example/labeldrop/internal/history"
)

const configFileName = "config.json"

// Settings holds GUI configuration
type Settings struct {
	DownloadDir    string `json:"download_dir" mapstructure:"download_dir"`
	AskBeforeSave  bool   `json:"ask_before_save" mapstructure:"ask_before_save"`
	KeepHistory    bool   `json:"keep_history" mapstructure:"keep_history"`
	HistoryLimit   int    `json:"history_limit" mapstructure:"history_limit"`
	PrinterAddress string `json:"printer_address" mapstructure:"printer_address"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
}

func defaultSettings() Settings {
	home, _ := os.UserHomeDir()
	return Settings{
		DownloadDir:   filepath.Join(home, "Labels"),
		AskBeforeSave: true,
		KeepHistory:   true,
		HistoryLimit:  history.DefaultLimit,
	}
}

// loadSettings reads dir/config.json, with LABELDROP_* environment variables
// taking precedence. Missing keys fall back to defaults.
func loadSettings(dir string) (Settings, error) {
	defaults := defaultSettings()

	v := viper.New()
	v.SetDefault("download_dir", defaults.DownloadDir)
	v.SetDefault("ask_before_save", defaults.AskBeforeSave)
	v.SetDefault("keep_history", defaults.KeepHistory)
	v.SetDefault("history_limit", defaults.HistoryLimit)
	v.SetDefault("printer_address", defaults.PrinterAddress)
	v.SetDefault("debug", defaults.Debug)

	v.SetEnvPrefix("LABELDROP")
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(dir, configFileName))
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return defaults, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return defaults, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if s.DownloadDir == "" {
		s.DownloadDir = defaults.DownloadDir
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = defaults.HistoryLimit
	}
	return s, nil
}

func saveSettings(dir string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, configFileName), data, 0644)
}
