// Package toolchain resolves the external media toolchain (ffmpeg/ffprobe)
// whose location is handed to the extraction library. The binaries are never
// invoked here beyond a version probe.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"yt-media-fetch/domain/media"
)

// FFmpegBinary and FFprobeBinary are the executables required on PATH.
const (
	FFmpegBinary  = "ffmpeg"
	FFprobeBinary = "ffprobe"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command and returns any error
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Locator implements media.ToolchainLocator using PATH lookup
type Locator struct {
	ffmpegPath  string // explicit override, skips PATH lookup
	ffprobePath string
	lookPath    func(file string) (string, error)
	runner      CommandRunner
}

// LocatorOption is a functional option for configuring Locator
type LocatorOption func(*Locator)

// WithFFmpegPath sets an explicit ffmpeg executable path
func WithFFmpegPath(path string) LocatorOption {
	return func(l *Locator) {
		l.ffmpegPath = path
	}
}

// WithFFprobePath sets an explicit ffprobe executable path
func WithFFprobePath(path string) LocatorOption {
	return func(l *Locator) {
		l.ffprobePath = path
	}
}

// WithLookPath sets a custom PATH resolver (for testing)
func WithLookPath(lookPath func(string) (string, error)) LocatorOption {
	return func(l *Locator) {
		l.lookPath = lookPath
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) LocatorOption {
	return func(l *Locator) {
		l.runner = runner
	}
}

// NewLocator creates a new toolchain Locator
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		lookPath: exec.LookPath,
		runner:   &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Locate resolves both toolchain executables. Absence is a configuration
// problem, not transient: the error wraps media.ErrToolchainMissing, names
// the first missing binary, and is never retried.
func (l *Locator) Locate(ctx context.Context) (media.ToolchainPaths, error) {
	ffmpeg, err := l.resolve(FFmpegBinary, l.ffmpegPath)
	if err != nil {
		return media.ToolchainPaths{}, err
	}
	ffprobe, err := l.resolve(FFprobeBinary, l.ffprobePath)
	if err != nil {
		return media.ToolchainPaths{}, err
	}
	return media.ToolchainPaths{FFmpeg: ffmpeg, FFprobe: ffprobe}, nil
}

func (l *Locator) resolve(binary, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	path, err := l.lookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found in PATH", media.ErrToolchainMissing, binary)
	}
	return path, nil
}

// versionProbeTimeout bounds the ffmpeg -version check
const versionProbeTimeout = 5 * time.Second

// VerifyInstalled checks that ffmpeg actually executes
func (l *Locator) VerifyInstalled(ctx context.Context) error {
	paths, err := l.Locate(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	if _, err := l.runner.Output(ctx, paths.FFmpeg, "-version"); err != nil {
		return fmt.Errorf("%w: %s not executable: %v", media.ErrToolchainMissing, paths.FFmpeg, err)
	}
	return nil
}

// Ensure Locator implements media.ToolchainLocator
var _ media.ToolchainLocator = (*Locator)(nil)
