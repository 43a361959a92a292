package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"yt-media-fetch/domain/media"
	"yt-media-fetch/infrastructure/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the configuration file interactively",
	Long: `Setup walks through the configuration options and writes them to
the config file. Existing files are only overwritten after confirmation.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile)
}

// RunSetupWithPrompter runs the setup flow with an injected prompter
// (for testing).
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	downloadDir, err := prompter.Input("Download directory", media.DefaultOutputDir)
	if err != nil {
		return err
	}
	mp3Quality, err := prompter.Input("MP3 quality (kbps)", media.DefaultMP3Quality)
	if err != nil {
		return err
	}
	ffmpegPath, err := prompter.Input("ffmpeg path (leave blank to search PATH)", "")
	if err != nil {
		return err
	}
	ffprobePath, err := prompter.Input("ffprobe path (leave blank to search PATH)", "")
	if err != nil {
		return err
	}

	cfg := &config.Config{
		Paths: config.PathsConfig{DownloadDirectory: downloadDir},
		Audio: config.AudioConfig{MP3Quality: mp3Quality},
		Toolchain: config.ToolchainConfig{
			FFmpegPath:  ffmpegPath,
			FFprobePath: ffprobePath,
		},
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create config directory: %w", err)
		}
	}
	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", configPath)
	return nil
}
