package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is used when the operator does not name a directory.
const DefaultOutputDir = "downloads"

// DefaultMP3Quality is the fixed re-encode bitrate for MP3 conversion, in kbps.
const DefaultMP3Quality = "192"

// MergedContainer is the container forced when separate video and audio
// streams must be muxed together.
const MergedContainer = "mp4"

// AudioConversion selects the post-processing applied to an audio download.
type AudioConversion string

const (
	// ConvertNone keeps the original container
	ConvertNone AudioConversion = ""
	// ConvertMP3 re-encodes to MP3
	ConvertMP3 AudioConversion = "mp3"
	// ConvertWAV re-encodes to lossless WAV
	ConvertWAV AudioConversion = "wav"
)

// Policy is a symbolic format selector understood by the extraction library,
// used when no explicit format has been chosen.
type Policy string

const (
	// PolicyNone means an explicit format id governs the request
	PolicyNone Policy = ""
	// PolicyBestVideo selects the best video with audio
	PolicyBestVideo Policy = "bestvideo+bestaudio/best"
	// PolicyBestAudio selects the best audio-only stream
	PolicyBestAudio Policy = "bestaudio/best"
)

// Request describes a single download invocation. Exactly one of FormatID
// or Policy governs the request; there is no multi-format fan-out.
type Request struct {
	URL          string
	FormatID     string
	SourceExt    string // container of the chosen format, for path resolution
	Policy       Policy
	OutputDir    string
	FilenameStem string
	Conversion   AudioConversion
	MergeContainer string
	MP3Quality   string
}

// NewFormatRequest builds a request targeting an explicitly chosen format.
// A conversion may only accompany an audio-only format.
func NewFormatRequest(url string, f Format, outputDir, stem string, conv AudioConversion) (*Request, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("url is required")
	}
	if f.ID == "" {
		return nil, fmt.Errorf("format id is required")
	}
	if conv != ConvertNone && !f.IsAudioOnly() {
		return nil, fmt.Errorf("audio conversion requires an audio-only format")
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return &Request{
		URL:          url,
		FormatID:     f.ID,
		SourceExt:    f.Ext,
		OutputDir:    outputDir,
		FilenameStem: stem,
		Conversion:   conv,
		MP3Quality:   DefaultMP3Quality,
	}, nil
}

// NewPolicyRequest builds a request governed by a symbolic selector rather
// than a chosen format. Best-video requests force the merged container so
// separate streams mux into a single file.
func NewPolicyRequest(url string, policy Policy, outputDir string, conv AudioConversion) (*Request, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("url is required")
	}
	if policy == PolicyNone {
		return nil, fmt.Errorf("policy is required")
	}
	if conv != ConvertNone && policy != PolicyBestAudio {
		return nil, fmt.Errorf("audio conversion requires the best-audio policy")
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	r := &Request{
		URL:        url,
		Policy:     policy,
		OutputDir:  outputDir,
		Conversion: conv,
		MP3Quality: DefaultMP3Quality,
	}
	if policy == PolicyBestVideo {
		r.MergeContainer = MergedContainer
	}
	return r, nil
}

// Selector returns the format selector passed to the extraction library.
func (r *Request) Selector() string {
	if r.FormatID != "" {
		return r.FormatID
	}
	return string(r.Policy)
}

// OutputTemplate returns the output path template. When no stem is set the
// library's title template is used so it derives the name itself.
func (r *Request) OutputTemplate() string {
	stem := r.FilenameStem
	if stem == "" {
		stem = "%(title)s"
	}
	return filepath.Join(r.OutputDir, stem+".%(ext)s")
}

// FinalExt returns the extension of the file the download will produce,
// accounting for the conversion override. Empty when only the library can
// know (policy requests with no conversion).
func (r *Request) FinalExt() string {
	if r.Conversion != ConvertNone {
		return string(r.Conversion)
	}
	return r.SourceExt
}

// FinalPath rewrites the downloaded path with the conversion extension.
// Without a conversion the downloaded path is already final.
func (r *Request) FinalPath(downloaded string) string {
	if r.Conversion == ConvertNone {
		return downloaded
	}
	return strings.TrimSuffix(downloaded, filepath.Ext(downloaded)) + "." + string(r.Conversion)
}
