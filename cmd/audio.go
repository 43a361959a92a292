package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"yt-media-fetch/domain/media"
)

var (
	audioOutputDir string
	audioFormat    string
)

var audioCmd = &cobra.Command{
	Use:   "audio <url>",
	Short: "Download the best audio-only stream",
	Long: `Audio downloads the best available audio-only stream without any
prompts and re-encodes it with ffmpeg. MP3 is the default target; pass
--format wav for lossless output.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudio,
}

func init() {
	rootCmd.AddCommand(audioCmd)
	audioCmd.Flags().StringVarP(&audioOutputDir, "dir", "d", "", "output directory (default \"downloads\")")
	audioCmd.Flags().StringVarP(&audioFormat, "format", "f", "mp3", "target audio format: mp3 or wav")
}

func runAudio(cmd *cobra.Command, args []string) error {
	var conv media.AudioConversion
	switch audioFormat {
	case "mp3":
		conv = media.ConvertMP3
	case "wav":
		conv = media.ConvertWAV
	default:
		return fmt.Errorf("unsupported audio format %q (use mp3 or wav)", audioFormat)
	}

	if err := ensureExtractor(cmd.Context()); err != nil {
		return err
	}
	return RunAudioWithDependencies(cmd.Context(), productionDeps(GetConfig()), args[0], audioOutputDir, conv)
}

// RunAudioWithDependencies downloads the best audio-only stream with
// injected dependencies (for testing).
func RunAudioWithDependencies(ctx context.Context, deps *Deps, url, outputDir string, conv media.AudioConversion) error {
	paths, err := checkToolchain(ctx, deps)
	if err != nil {
		return err
	}
	if !media.ValidYouTubeURL(url) {
		return fmt.Errorf("not a valid YouTube URL: %s", url)
	}

	if outputDir == "" {
		outputDir = deps.DefaultDir
	}
	if err := deps.Files.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	fmt.Fprintf(deps.Out, "Downloading best audio quality (%s)...\n", conv)
	sink := deps.NewSink(url)
	result, err := deps.service(paths).DownloadBestAudio(ctx, url, outputDir, conv, sink)
	waitSink(sink)
	if err != nil {
		return err
	}

	reportResult(deps.Out, "", result)
	return nil
}
