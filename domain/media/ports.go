package media

import (
	"context"
	"path/filepath"
)

// Discoverer performs the metadata-only query enumerating available formats
// without transferring media.
type Discoverer interface {
	Discover(ctx context.Context, url string) (*Metadata, error)
}

// Fetcher performs the transfer and optional post-processing for a request,
// publishing progress events to the sink.
type Fetcher interface {
	Fetch(ctx context.Context, req *Request, sink ProgressSink) (*Result, error)
}

// ToolchainPaths holds the resolved locations of the media toolchain.
type ToolchainPaths struct {
	FFmpeg  string
	FFprobe string
}

// Dir returns the directory containing the toolchain, as passed to the
// extraction library.
func (p ToolchainPaths) Dir() string {
	return filepath.Dir(p.FFmpeg)
}

// ToolchainLocator resolves the media toolchain on the execution path.
type ToolchainLocator interface {
	Locate(ctx context.Context) (ToolchainPaths, error)
}

// FileChecker abstracts file existence checks
type FileChecker interface {
	Exists(path string) bool
}
