// Package fetch coordinates format discovery and single downloads.
package fetch

import (
	"context"
	"fmt"

	"yt-media-fetch/domain/media"
)

// Service coordinates discovery and download operations against the
// extraction-library ports.
type Service struct {
	discoverer media.Discoverer
	fetcher    media.Fetcher
	mp3Quality string
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithMP3Quality overrides the MP3 re-encode bitrate applied to requests
func WithMP3Quality(quality string) ServiceOption {
	return func(s *Service) {
		s.mp3Quality = quality
	}
}

// NewService creates a new fetch Service
func NewService(discoverer media.Discoverer, fetcher media.Fetcher, opts ...ServiceOption) *Service {
	s := &Service{
		discoverer: discoverer,
		fetcher:    fetcher,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Discover runs the metadata-only query for a URL. Failures wrap
// media.ErrDiscoveryFailed with the underlying message; an empty format
// list is terminal for the URL and reported as media.ErrNoFormats.
func (s *Service) Discover(ctx context.Context, url string) (*media.Metadata, error) {
	meta, err := s.discoverer.Discover(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrDiscoveryFailed, err)
	}
	if len(meta.Formats) == 0 {
		return nil, media.ErrNoFormats
	}
	return meta, nil
}

// Download executes a single download request, streaming progress events to
// the sink. Failures wrap media.ErrDownloadFailed; a partially written file
// may remain on disk.
func (s *Service) Download(ctx context.Context, req *media.Request, sink media.ProgressSink) (*media.Result, error) {
	if sink == nil {
		sink = media.NopSink{}
	}
	if s.mp3Quality != "" {
		req.MP3Quality = s.mp3Quality
	}

	result, err := s.fetcher.Fetch(ctx, req, sink)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrDownloadFailed, err)
	}
	return result, nil
}

// DownloadBestVideo downloads the best video-with-audio stream, muxing
// separate streams into a single MP4.
func (s *Service) DownloadBestVideo(ctx context.Context, url, outputDir string, sink media.ProgressSink) (*media.Result, error) {
	req, err := media.NewPolicyRequest(url, media.PolicyBestVideo, outputDir, media.ConvertNone)
	if err != nil {
		return nil, err
	}
	return s.Download(ctx, req, sink)
}

// DownloadBestAudio downloads the best audio-only stream and re-encodes it
// into the requested container.
func (s *Service) DownloadBestAudio(ctx context.Context, url, outputDir string, conv media.AudioConversion, sink media.ProgressSink) (*media.Result, error) {
	req, err := media.NewPolicyRequest(url, media.PolicyBestAudio, outputDir, conv)
	if err != nil {
		return nil, err
	}
	return s.Download(ctx, req, sink)
}
