package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Audio     AudioConfig     `yaml:"audio"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Download  DownloadConfig  `yaml:"download"`
}

// PathsConfig contains directory settings
type PathsConfig struct {
	DownloadDirectory string `yaml:"download_directory"`
}

// AudioConfig contains audio conversion settings
type AudioConfig struct {
	MP3Quality string `yaml:"mp3_quality"`
}

// ToolchainConfig contains overrides for the media toolchain location
type ToolchainConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	// VerifyInstall runs "ffmpeg -version" during the toolchain check
	VerifyInstall bool `yaml:"verify_install"`
}

// DownloadConfig contains transfer settings
type DownloadConfig struct {
	RateLimitBps int64 `yaml:"rate_limit_bps"`
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
