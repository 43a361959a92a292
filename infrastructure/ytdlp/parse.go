package ytdlp

import (
	"encoding/json"
	"fmt"
	"math"

	"yt-media-fetch/domain/media"
)

// rawInfo mirrors the subset of yt-dlp's --dump-single-json output consumed
// here. Everything else in the response is ignored.
type rawInfo struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Duration float64     `json:"duration"`
	Uploader string      `json:"uploader"`
	Channel  string      `json:"channel"`
	Formats  []rawFormat `json:"formats"`
}

type rawFormat struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	ABR        float64 `json:"abr"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	Filesize   int64   `json:"filesize"`
}

// parseMetadata validates the extraction library's response at the boundary:
// formats without an id are dropped, absent codecs become the "none" marker,
// and an absent resolution becomes "unknown".
func parseMetadata(data []byte) (*media.Metadata, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid info json: %w", err)
	}

	meta := &media.Metadata{
		ID:       raw.ID,
		Title:    raw.Title,
		Duration: int(raw.Duration),
		Uploader: raw.Uploader,
	}
	if meta.Uploader == "" {
		meta.Uploader = raw.Channel
	}

	for _, f := range raw.Formats {
		if f.FormatID == "" {
			continue
		}
		meta.Formats = append(meta.Formats, media.Format{
			ID:           f.FormatID,
			Ext:          f.Ext,
			Resolution:   orUnknown(f.Resolution),
			AudioBitrate: int(math.Round(f.ABR)),
			VideoCodec:   orNone(f.VCodec),
			AudioCodec:   orNone(f.ACodec),
			Filesize:     f.Filesize,
		})
	}
	return meta, nil
}

func orUnknown(s string) string {
	if s == "" {
		return media.UnknownResolution
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return media.CodecNone
	}
	return s
}
