package media

import "fmt"

// CodecNone is the marker the extraction library uses for an absent codec.
const CodecNone = "none"

// UnknownResolution is used when the source does not report a resolution.
const UnknownResolution = "unknown"

// Format describes one retrievable stream variant offered by the source.
// Instances are produced by format discovery and never mutated afterwards.
type Format struct {
	ID           string
	Ext          string
	Resolution   string
	AudioBitrate int // kbps, 0 when not reported
	VideoCodec   string
	AudioCodec   string
	Filesize     int64
}

// HasVideo returns true if the format carries a video stream.
func (f Format) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != CodecNone
}

// HasAudio returns true if the format carries an audio stream.
func (f Format) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != CodecNone
}

// IsAudioOnly returns true for formats with audio but no video stream.
func (f Format) IsAudioOnly() bool {
	return f.HasAudio() && !f.HasVideo()
}

// Label returns the quality key shown in the selection menu. It doubles as
// the deduplication key: video formats by (resolution, container), audio
// formats by (bitrate, container).
func (f Format) Label() string {
	if f.IsAudioOnly() {
		return fmt.Sprintf("%dkbps_%s", f.AudioBitrate, f.Ext)
	}
	return fmt.Sprintf("%s_%s", f.Resolution, f.Ext)
}
