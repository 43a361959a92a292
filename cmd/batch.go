package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yt-media-fetch/application/batch"
	"yt-media-fetch/domain/media"
)

var (
	batchFile      string
	batchOutputDir string
	batchStrategy  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Download every URL listed in a text file",
	Long: `Batch reads a text file with one URL per line and downloads each
one with the chosen strategy. A failing URL is skipped and the batch
continues; the final summary counts successes against the attempted total.

Strategies:
  best-video   best video with audio, merged to MP4 (default)
  audio-mp3    best audio only, converted to MP3
  audio-wav    best audio only, converted to WAV
  interactive  per-video format selection menu`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "text file with one URL per line (required)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "dir", "d", "", "output directory (default \"downloads\")")
	batchCmd.Flags().StringVarP(&batchStrategy, "strategy", "s", string(batch.StrategyBestVideo), "download strategy")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := ensureExtractor(cmd.Context()); err != nil {
		return err
	}
	return RunBatchWithDependencies(cmd.Context(), productionDeps(GetConfig()), batchFile, batchOutputDir, batchStrategy)
}

// RunBatchWithDependencies runs a batch download with injected dependencies
// (for testing).
func RunBatchWithDependencies(ctx context.Context, deps *Deps, file, outputDir, strategyName string) error {
	paths, err := checkToolchain(ctx, deps)
	if err != nil {
		return err
	}

	strategy, err := batch.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	if !deps.Files.Exists(file) {
		return fmt.Errorf("file not found: %s", file)
	}
	urls, err := deps.ReadURLs(file)
	if err != nil {
		return fmt.Errorf("could not read URL list: %w", err)
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Out, "No URLs found in the file")
		return nil
	}
	fmt.Fprintf(deps.Out, "Found %d URLs to download\n", len(urls))

	if outputDir == "" {
		outputDir = deps.DefaultDir
	}
	if err := deps.Files.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	svc := deps.service(paths)
	batchSvc := batch.NewService(svc, deps.Out,
		batch.WithInteractiveHandler(func(ctx context.Context, url, dir string) (*media.Result, error) {
			return downloadWithSelection(ctx, deps, svc, url, dir)
		}),
		batch.WithProgressSinks(func() media.ProgressSink {
			return deps.NewSink("download")
		}),
	)

	_, err = batchSvc.Run(ctx, urls, outputDir, strategy)
	return err
}

const (
	strategyOptionBestVideo = "Best video with audio"
	strategyOptionMP3       = "Best audio only (MP3)"
	strategyOptionWAV       = "Best audio only (WAV)"
	strategyOptionCustom    = "Choose format per video"
)

// runBatchInteractive gathers the batch parameters through prompts, for the
// interactive menu.
func runBatchInteractive(ctx context.Context, deps *Deps) error {
	file, err := deps.Prompter.Input("Path to text file with URLs (one per line)", "")
	if err != nil {
		return err
	}
	if strings.TrimSpace(file) == "" {
		return fmt.Errorf("a URL list file is required")
	}

	dir, err := deps.Prompter.Input("Output directory", deps.DefaultDir)
	if err != nil {
		return err
	}

	choice, err := deps.Prompter.Select(
		"Download strategy",
		[]string{strategyOptionBestVideo, strategyOptionMP3, strategyOptionWAV, strategyOptionCustom},
		strategyOptionBestVideo,
	)
	if err != nil {
		return err
	}

	strategy := batch.StrategyBestVideo
	switch choice {
	case strategyOptionMP3:
		strategy = batch.StrategyAudioMP3
	case strategyOptionWAV:
		strategy = batch.StrategyAudioWAV
	case strategyOptionCustom:
		strategy = batch.StrategyInteractive
	}

	return RunBatchWithDependencies(ctx, deps, file, dir, string(strategy))
}
