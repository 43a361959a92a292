// Package batch runs a download strategy over a list of URLs sequentially.
package batch

import (
	"context"
	"fmt"
	"io"

	"yt-media-fetch/application/fetch"
	"yt-media-fetch/domain/media"
)

// Strategy selects how each URL in a batch is downloaded.
type Strategy string

const (
	// StrategyBestVideo downloads the best video with audio, merged to MP4
	StrategyBestVideo Strategy = "best-video"
	// StrategyAudioMP3 downloads the best audio re-encoded to MP3
	StrategyAudioMP3 Strategy = "audio-mp3"
	// StrategyAudioWAV downloads the best audio re-encoded to WAV
	StrategyAudioWAV Strategy = "audio-wav"
	// StrategyInteractive prompts for a format per item
	StrategyInteractive Strategy = "interactive"
)

// ParseStrategy maps a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyBestVideo, StrategyAudioMP3, StrategyAudioWAV, StrategyInteractive:
		return Strategy(name), nil
	}
	return "", fmt.Errorf("unknown strategy %q", name)
}

// InteractiveHandler downloads one URL with per-item format selection. The
// cmd layer wires the selection menu flow into it.
type InteractiveHandler func(ctx context.Context, url, outputDir string) (*media.Result, error)

// Report summarizes a batch run.
type Report struct {
	Attempted int
	Results   []media.Result
}

// Succeeded returns the number of successful downloads.
func (r *Report) Succeeded() int {
	return len(r.Results)
}

// String renders the final batch summary.
func (r *Report) String() string {
	return fmt.Sprintf("%d/%d successful", r.Succeeded(), r.Attempted)
}

// Service processes URL lists strictly sequentially, continuing past
// individual failures.
type Service struct {
	fetch       *fetch.Service
	interactive InteractiveHandler
	out         io.Writer
	newSink     func() media.ProgressSink
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithInteractiveHandler sets the per-item selection handler
func WithInteractiveHandler(h InteractiveHandler) Option {
	return func(s *Service) {
		s.interactive = h
	}
}

// WithProgressSinks sets a factory producing one sink per download
func WithProgressSinks(factory func() media.ProgressSink) Option {
	return func(s *Service) {
		s.newSink = factory
	}
}

// NewService creates a new batch Service writing progress lines to out.
func NewService(fetchSvc *fetch.Service, out io.Writer, opts ...Option) *Service {
	s := &Service{
		fetch:   fetchSvc,
		out:     out,
		newSink: func() media.ProgressSink { return media.NopSink{} },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run downloads every URL with the chosen strategy. A failing URL is logged
// and skipped; it never aborts the batch. The returned report counts
// successes against the attempted total.
func (s *Service) Run(ctx context.Context, urls []string, outputDir string, strategy Strategy) (*Report, error) {
	if strategy == StrategyInteractive && s.interactive == nil {
		return nil, fmt.Errorf("interactive strategy requires a selection handler")
	}

	report := &Report{Attempted: len(urls)}

	for i, url := range urls {
		fmt.Fprintf(s.out, "Downloading %d/%d: %s\n", i+1, len(urls), url)

		result, err := s.downloadOne(ctx, url, outputDir, strategy)
		if err != nil {
			fmt.Fprintf(s.out, "Skipping %s: %v\n", url, err)
			continue
		}
		report.Results = append(report.Results, *result)
	}

	fmt.Fprintf(s.out, "Batch download completed: %s\n", report)
	return report, nil
}

func (s *Service) downloadOne(ctx context.Context, url, outputDir string, strategy Strategy) (*media.Result, error) {
	switch strategy {
	case StrategyAudioMP3:
		return s.fetch.DownloadBestAudio(ctx, url, outputDir, media.ConvertMP3, s.newSink())
	case StrategyAudioWAV:
		return s.fetch.DownloadBestAudio(ctx, url, outputDir, media.ConvertWAV, s.newSink())
	case StrategyInteractive:
		return s.interactive(ctx, url, outputDir)
	default:
		return s.fetch.DownloadBestVideo(ctx, url, outputDir, s.newSink())
	}
}
