// Package ytdlp adapts the go-ytdlp extraction library to the domain ports.
// All protocol negotiation, transfer, and transcoding happen inside yt-dlp
// and the configured ffmpeg toolchain; this package only assembles option
// sets and validates responses.
package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"

	"yt-media-fetch/domain/media"
)

const progressInterval = 500 * time.Millisecond

// Client implements media.Discoverer and media.Fetcher on top of go-ytdlp.
type Client struct {
	toolchainDir string
	rateLimitBps int64
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithToolchainDir passes the ffmpeg directory to the extraction library
func WithToolchainDir(dir string) ClientOption {
	return func(c *Client) {
		c.toolchainDir = dir
	}
}

// WithRateLimit caps the transfer rate in bytes per second
func WithRateLimit(bps int64) ClientOption {
	return func(c *Client) {
		c.rateLimitBps = bps
	}
}

// NewClient creates a new extraction-library client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Install makes sure the yt-dlp binary itself is available, downloading a
// cached copy when it is not on the system.
func Install(ctx context.Context) error {
	_, err := goytdlp.Install(ctx, nil)
	return err
}

// Discover implements media.Discoverer with a metadata-only query: the
// download is skipped and the single-video info JSON is parsed into typed
// structures at this boundary.
func (c *Client) Discover(ctx context.Context, url string) (*media.Metadata, error) {
	dl := goytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		NoWarnings()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseMetadata([]byte(result.Stdout))
}

// Fetch implements media.Fetcher. It maps the request onto yt-dlp options,
// bridges progress updates into domain events, and resolves the final
// on-disk path, applying the conversion extension override.
func (c *Client) Fetch(ctx context.Context, req *media.Request, sink media.ProgressSink) (*media.Result, error) {
	dl := goytdlp.New().
		Format(req.Selector()).
		Output(req.OutputTemplate()).
		NoPlaylist().
		NoWarnings().
		PrintJSON()

	if c.toolchainDir != "" {
		dl = dl.FFmpegLocation(c.toolchainDir)
	}
	if req.MergeContainer != "" {
		dl = dl.MergeOutputFormat(req.MergeContainer)
	}
	if c.rateLimitBps > 0 {
		dl = dl.LimitRate(strconv.FormatInt(c.rateLimitBps, 10))
	}

	switch req.Conversion {
	case media.ConvertMP3:
		dl = dl.ExtractAudio().AudioFormat(string(media.ConvertMP3)).AudioQuality(req.MP3Quality)
	case media.ConvertWAV:
		dl = dl.ExtractAudio().AudioFormat(string(media.ConvertWAV))
	}

	dl = dl.ProgressFunc(progressInterval, func(update goytdlp.ProgressUpdate) {
		sink.Publish(toProgressEvent(update))
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	sink.Publish(media.ProgressEvent{Percent: 100, Finished: true})

	path := resolveOutputPath(req, result)
	res := &media.Result{Path: path}
	if info, statErr := os.Stat(path); statErr == nil {
		res.Size = info.Size()
	}
	return res, nil
}

// toProgressEvent converts a library progress update into a domain event,
// deriving percentage and transfer rate from the byte counters.
func toProgressEvent(update goytdlp.ProgressUpdate) media.ProgressEvent {
	ev := media.ProgressEvent{
		TotalBytes:      int64(update.TotalBytes),
		DownloadedBytes: int64(update.DownloadedBytes),
		ETA:             update.ETA(),
	}
	if update.TotalBytes > 0 {
		ev.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}
	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started); elapsed.Seconds() > 0 {
			ev.Rate = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}
	return ev
}

// resolveOutputPath determines where the download landed. The library
// reports the pre-postprocessing filename, so conversions rewrite the
// extension, mirroring how the postprocessor names its output.
func resolveOutputPath(req *media.Request, result *goytdlp.Result) string {
	if result != nil {
		if infos, err := result.GetExtractedInfo(); err == nil {
			for _, info := range infos {
				if info != nil && info.Filename != nil && *info.Filename != "" {
					return req.FinalPath(*info.Filename)
				}
			}
		}
	}
	// fall back to the template components when the library reported nothing
	if req.FilenameStem != "" && req.FinalExt() != "" {
		return filepath.Join(req.OutputDir, req.FilenameStem+"."+req.FinalExt())
	}
	return ""
}

var (
	_ media.Discoverer = (*Client)(nil)
	_ media.Fetcher    = (*Client)(nil)
)
