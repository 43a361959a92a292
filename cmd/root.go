package cmd

import (
	"fmt"
	"os"

	"yt-media-fetch/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "yt-media-fetch",
	Short: "Download YouTube media with interactive format selection",
	Long: `yt-media-fetch retrieves video or audio from YouTube through yt-dlp
and ffmpeg:

  - Discover available formats and pick one interactively
  - Download the best video or audio directly
  - Convert audio downloads to MP3 or WAV
  - Process URL lists in batch

Run without arguments for the interactive menu, or use a subcommand.

Example:
  yt-media-fetch audio --format mp3 https://youtu.be/abc123`,
	RunE: runMenuCommand,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// The config file is optional; every setting has a default.
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

func runMenuCommand(cmd *cobra.Command, args []string) error {
	if err := ensureExtractor(cmd.Context()); err != nil {
		return err
	}
	return RunMenu(cmd.Context(), productionDeps(GetConfig()))
}
