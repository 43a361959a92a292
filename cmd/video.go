package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"yt-media-fetch/domain/media"
)

var videoOutputDir string

var videoCmd = &cobra.Command{
	Use:   "video <url>",
	Short: "Download the best video quality with audio",
	Long: `Video downloads the best available video-with-audio stream without
any prompts. Separate video and audio streams are merged into a single MP4.`,
	Args: cobra.ExactArgs(1),
	RunE: runVideo,
}

func init() {
	rootCmd.AddCommand(videoCmd)
	videoCmd.Flags().StringVarP(&videoOutputDir, "dir", "d", "", "output directory (default \"downloads\")")
}

func runVideo(cmd *cobra.Command, args []string) error {
	if err := ensureExtractor(cmd.Context()); err != nil {
		return err
	}
	return RunVideoWithDependencies(cmd.Context(), productionDeps(GetConfig()), args[0], videoOutputDir)
}

// RunVideoWithDependencies downloads the best video quality with injected
// dependencies (for testing).
func RunVideoWithDependencies(ctx context.Context, deps *Deps, url, outputDir string) error {
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

	fmt.Fprintln(deps.Out, "Downloading best video quality...")
	sink := deps.NewSink(url)
	result, err := deps.service(paths).DownloadBestVideo(ctx, url, outputDir, sink)
	waitSink(sink)
	if err != nil {
		return err
	}

	reportResult(deps.Out, "", result)
	return nil
}
