package media

import "errors"

var (
	// ErrToolchainMissing is returned when ffmpeg or ffprobe cannot be resolved
	ErrToolchainMissing = errors.New("media toolchain not found")

	// ErrDiscoveryFailed is returned when the metadata query fails
	ErrDiscoveryFailed = errors.New("format discovery failed")

	// ErrDownloadFailed is returned when the transfer or post-processing fails
	ErrDownloadFailed = errors.New("download failed")

	// ErrNoFormats is returned when discovery yields no selectable encodings
	ErrNoFormats = errors.New("no selectable formats available")

	// ErrInvalidChoice is returned for menu input that maps to no option;
	// callers re-prompt instead of propagating it
	ErrInvalidChoice = errors.New("invalid selection")
)
