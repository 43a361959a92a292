package media

import (
	"fmt"
	"strconv"
	"strings"
)

// QuitToken cancels the format selection menu.
const QuitToken = "q"

// Option is one numbered entry in the selection menu.
type Option struct {
	Index  int // 1-based, video entries first
	Label  string
	Format Format
}

// String renders the option as a menu line.
func (o Option) String() string {
	return fmt.Sprintf("%d. %s (%s)", o.Index, o.Label, o.Format.Ext)
}

// Selection is the deduplicated, partitioned set of selectable formats.
type Selection struct {
	video []Option
	audio []Option
}

// BuildSelection partitions formats into video-with-audio and audio-only
// buckets, drops formats with neither stream, and deduplicates each bucket
// by quality label keeping the first-seen entry in discovery order. Video
// options are numbered 1..V, audio options V+1..V+A.
func BuildSelection(formats []Format) Selection {
	var s Selection
	seenVideo := map[string]bool{}
	seenAudio := map[string]bool{}

	for _, f := range formats {
		switch {
		case f.HasVideo() && f.HasAudio():
			if key := f.Label(); !seenVideo[key] {
				seenVideo[key] = true
				s.video = append(s.video, Option{Label: key, Format: f})
			}
		case f.IsAudioOnly():
			if key := f.Label(); !seenAudio[key] {
				seenAudio[key] = true
				s.audio = append(s.audio, Option{Label: key, Format: f})
			}
		}
	}

	for i := range s.video {
		s.video[i].Index = i + 1
	}
	for i := range s.audio {
		s.audio[i].Index = len(s.video) + i + 1
	}
	return s
}

// VideoOptions returns the video-with-audio entries in menu order.
func (s Selection) VideoOptions() []Option {
	return s.video
}

// AudioOptions returns the audio-only entries in menu order.
func (s Selection) AudioOptions() []Option {
	return s.audio
}

// Total returns the number of selectable options.
func (s Selection) Total() int {
	return len(s.video) + len(s.audio)
}

// Resolve maps raw operator input to a format. It returns quit=true for the
// quit token, ErrInvalidChoice for non-numeric or out-of-range input, and
// the chosen format otherwise.
func (s Selection) Resolve(input string) (Format, bool, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, QuitToken) {
		return Format{}, true, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return Format{}, false, fmt.Errorf("%w: enter a number between 1 and %d or %q", ErrInvalidChoice, s.Total(), QuitToken)
	}
	if n < 1 || n > s.Total() {
		return Format{}, false, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidChoice, n, s.Total())
	}

	if n <= len(s.video) {
		return s.video[n-1].Format, false, nil
	}
	return s.audio[n-len(s.video)-1].Format, false, nil
}
