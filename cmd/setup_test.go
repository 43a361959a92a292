package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"yt-media-fetch/infrastructure/config"
)

func TestRunSetupWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")
	prompter := &mockPrompter{
		inputs: []string{"media", "256", "/opt/ffmpeg/bin/ffmpeg", ""},
	}

	if err := RunSetupWithPrompter(prompter, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("could not load written config: %v", err)
	}
	if cfg.Paths.DownloadDirectory != "media" {
		t.Errorf("expected download directory media, got %q", cfg.Paths.DownloadDirectory)
	}
	if cfg.Audio.MP3Quality != "256" {
		t.Errorf("expected mp3 quality 256, got %q", cfg.Audio.MP3Quality)
	}
	if cfg.Toolchain.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected ffmpeg override, got %q", cfg.Toolchain.FFmpegPath)
	}
	if cfg.Toolchain.FFprobePath != "" {
		t.Errorf("expected empty ffprobe override, got %q", cfg.Toolchain.FFprobePath)
	}
}

func TestRunSetupDeclinedOverwriteKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := []byte("paths:\n  download_directory: keepme\n")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatal(err)
	}

	prompter := &mockPrompter{confirms: []bool{false}}
	if err := RunSetupWithPrompter(prompter, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.DownloadDirectory != "keepme" {
		t.Errorf("expected config untouched, got %q", cfg.Paths.DownloadDirectory)
	}
}
