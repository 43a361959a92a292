package cmd

import (
	"context"
	"fmt"
	"os"

	"yt-media-fetch/application/fetch"
	"yt-media-fetch/domain/media"
	"yt-media-fetch/infrastructure/config"
	"yt-media-fetch/infrastructure/console"
	"yt-media-fetch/infrastructure/filesystem"
	"yt-media-fetch/infrastructure/toolchain"
	"yt-media-fetch/infrastructure/ytdlp"
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// FileStore abstracts the filesystem operations the commands need
type FileStore interface {
	Exists(path string) bool
	EnsureDir(path string) error
}

// FetcherFactory builds a fetcher once the toolchain has been located. The
// resolved paths are handed to the extraction library, so the fetcher cannot
// exist before the toolchain check succeeds.
type FetcherFactory func(paths media.ToolchainPaths) media.Fetcher

// Deps holds the dependencies for command operations.
// This allows mocking in tests.
type Deps struct {
	Locator    media.ToolchainLocator
	Discoverer media.Discoverer
	NewFetcher FetcherFactory
	Files      FileStore
	ReadURLs   func(path string) ([]string, error)
	Prompter   Prompter
	Out        OutputWriter
	NewSink    func(name string) media.ProgressSink
	DefaultDir string
	MP3Quality string
	// VerifyToolchain additionally runs "ffmpeg -version" during the check
	VerifyToolchain bool
}

// toolchainVerifier is implemented by locators that can probe the binary
type toolchainVerifier interface {
	VerifyInstalled(ctx context.Context) error
}

// productionDeps wires the real implementations, applying config overrides
// when a config file was loaded.
func productionDeps(cfg *config.Config) *Deps {
	deps := &Deps{
		Discoverer: ytdlp.NewClient(),
		Files:      filesystem.NewChecker(),
		ReadURLs:   filesystem.ReadURLList,
		Prompter:   DefaultPrompter,
		Out:        os.Stdout,
		DefaultDir: media.DefaultOutputDir,
	}

	var locatorOpts []toolchain.LocatorOption
	var rateLimit int64
	if cfg != nil {
		if cfg.Paths.DownloadDirectory != "" {
			deps.DefaultDir = cfg.Paths.DownloadDirectory
		}
		deps.MP3Quality = cfg.Audio.MP3Quality
		if cfg.Toolchain.FFmpegPath != "" {
			locatorOpts = append(locatorOpts, toolchain.WithFFmpegPath(cfg.Toolchain.FFmpegPath))
		}
		if cfg.Toolchain.FFprobePath != "" {
			locatorOpts = append(locatorOpts, toolchain.WithFFprobePath(cfg.Toolchain.FFprobePath))
		}
		deps.VerifyToolchain = cfg.Toolchain.VerifyInstall
		rateLimit = cfg.Download.RateLimitBps
	}

	deps.Locator = toolchain.NewLocator(locatorOpts...)
	deps.NewFetcher = func(paths media.ToolchainPaths) media.Fetcher {
		return ytdlp.NewClient(
			ytdlp.WithToolchainDir(paths.Dir()),
			ytdlp.WithRateLimit(rateLimit),
		)
	}
	deps.NewSink = func(name string) media.ProgressSink {
		return console.NewProgressRenderer(os.Stdout, name)
	}
	return deps
}

// service assembles the fetch service for a resolved toolchain
func (d *Deps) service(paths media.ToolchainPaths) *fetch.Service {
	var opts []fetch.ServiceOption
	if d.MP3Quality != "" {
		opts = append(opts, fetch.WithMP3Quality(d.MP3Quality))
	}
	return fetch.NewService(d.Discoverer, d.NewFetcher(paths), opts...)
}

// checkToolchain resolves ffmpeg and ffprobe before any network work and
// reports where they were found.
func checkToolchain(ctx context.Context, deps *Deps) (media.ToolchainPaths, error) {
	paths, err := deps.Locator.Locate(ctx)
	if err != nil {
		fmt.Fprintln(deps.Out, "ffmpeg/ffprobe are required. Install them and make sure they are on PATH.")
		return media.ToolchainPaths{}, err
	}
	if deps.VerifyToolchain {
		if v, ok := deps.Locator.(toolchainVerifier); ok {
			if err := v.VerifyInstalled(ctx); err != nil {
				fmt.Fprintln(deps.Out, "ffmpeg is present but did not execute; check the installation.")
				return media.ToolchainPaths{}, err
			}
		}
	}
	fmt.Fprintf(deps.Out, "ffmpeg found at: %s\n", paths.FFmpeg)
	fmt.Fprintf(deps.Out, "ffprobe found at: %s\n", paths.FFprobe)
	return paths, nil
}

// ensureExtractor provisions a cached yt-dlp binary when none is installed
func ensureExtractor(ctx context.Context) error {
	if err := ytdlp.Install(ctx); err != nil {
		return fmt.Errorf("could not provision yt-dlp: %w", err)
	}
	return nil
}

// waitSink flushes sinks that buffer terminal output
func waitSink(sink media.ProgressSink) {
	if w, ok := sink.(interface{ Wait() }); ok {
		w.Wait()
	}
}
