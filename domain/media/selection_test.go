package media

import (
	"errors"
	"testing"
)

func TestBuildSelection(t *testing.T) {
	formats := []Format{
		{ID: "137+140", Ext: "mp4", Resolution: "1080p60", VideoCodec: "avc1", AudioCodec: "mp4a"},
		{ID: "22", Ext: "mp4", Resolution: "720p", VideoCodec: "avc1", AudioCodec: "mp4a"},
		// duplicate quality key, later in discovery order
		{ID: "18", Ext: "mp4", Resolution: "720p", VideoCodec: "avc1.42001E", AudioCodec: "mp4a.40.2"},
		{ID: "140", Ext: "m4a", AudioBitrate: 160, VideoCodec: CodecNone, AudioCodec: "mp4a"},
		{ID: "139", Ext: "m4a", AudioBitrate: 160, VideoCodec: CodecNone, AudioCodec: "mp4a"},
		{ID: "251", Ext: "webm", AudioBitrate: 140, VideoCodec: CodecNone, AudioCodec: "opus"},
		// storyboard-style entry with neither stream is dropped
		{ID: "sb0", Ext: "mhtml", VideoCodec: CodecNone, AudioCodec: CodecNone},
	}

	s := BuildSelection(formats)

	if got, want := len(s.VideoOptions()), 2; got != want {
		t.Fatalf("video options = %d, want %d", got, want)
	}
	if got, want := len(s.AudioOptions()), 2; got != want {
		t.Fatalf("audio options = %d, want %d", got, want)
	}
	if got, want := s.Total(), 4; got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}

	// first-seen entry wins per quality key
	if got := s.VideoOptions()[1].Format.ID; got != "22" {
		t.Errorf("dedup kept format %q, want first-seen %q", got, "22")
	}
	if got := s.AudioOptions()[0].Format.ID; got != "140" {
		t.Errorf("dedup kept format %q, want first-seen %q", got, "140")
	}

	// audio indices continue after video indices
	if got := s.AudioOptions()[0].Index; got != 3 {
		t.Errorf("first audio index = %d, want 3", got)
	}

	// no duplicate labels within a partition
	seen := map[string]bool{}
	for _, o := range s.VideoOptions() {
		if seen[o.Label] {
			t.Errorf("duplicate video label %q", o.Label)
		}
		seen[o.Label] = true
	}
	seen = map[string]bool{}
	for _, o := range s.AudioOptions() {
		if seen[o.Label] {
			t.Errorf("duplicate audio label %q", o.Label)
		}
		seen[o.Label] = true
	}
}

func TestSelectionResolve(t *testing.T) {
	s := BuildSelection([]Format{
		{ID: "22", Ext: "mp4", Resolution: "1080p60", VideoCodec: "avc1", AudioCodec: "mp4a"},
		{ID: "140", Ext: "m4a", AudioBitrate: 160, VideoCodec: CodecNone, AudioCodec: "mp4a"},
	})

	tests := []struct {
		name     string
		input    string
		wantID   string
		wantQuit bool
		wantErr  bool
	}{
		{name: "video entry", input: "1", wantID: "22"},
		{name: "audio entry", input: "2", wantID: "140"},
		{name: "quit", input: "q", wantQuit: true},
		{name: "quit uppercase", input: "Q", wantQuit: true},
		{name: "quit with whitespace", input: " q ", wantQuit: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "out of range", input: "3", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, quit, err := s.Resolve(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidChoice) {
					t.Fatalf("Resolve(%q) error = %v, want ErrInvalidChoice", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.input, err)
			}
			if quit != tt.wantQuit {
				t.Fatalf("Resolve(%q) quit = %v, want %v", tt.input, quit, tt.wantQuit)
			}
			if !tt.wantQuit && f.ID != tt.wantID {
				t.Errorf("Resolve(%q) format = %q, want %q", tt.input, f.ID, tt.wantID)
			}
		})
	}
}

func TestSelectionMenuRendering(t *testing.T) {
	// one 1080p60 mp4 video and one 160kbps m4a audio
	s := BuildSelection([]Format{
		{ID: "299+140", Ext: "mp4", Resolution: "1080p60", VideoCodec: "avc1", AudioCodec: "mp4a"},
		{ID: "140", Ext: "m4a", AudioBitrate: 160, VideoCodec: CodecNone, AudioCodec: "mp4a"},
	})

	if got, want := s.VideoOptions()[0].String(), "1. 1080p60_mp4 (mp4)"; got != want {
		t.Errorf("video option = %q, want %q", got, want)
	}
	if got, want := s.AudioOptions()[0].String(), "2. 160kbps_m4a (m4a)"; got != want {
		t.Errorf("audio option = %q, want %q", got, want)
	}
}

func TestSelectionEmpty(t *testing.T) {
	s := BuildSelection(nil)

	if s.Total() != 0 {
		t.Fatalf("Total() = %d, want 0", s.Total())
	}
	// every numeric input is out of range on an empty selection
	if _, _, err := s.Resolve("1"); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("Resolve on empty selection error = %v, want ErrInvalidChoice", err)
	}
	// quitting still works
	if _, quit, err := s.Resolve("q"); err != nil || !quit {
		t.Errorf("Resolve(q) = quit %v err %v, want quit without error", quit, err)
	}
}
