package media

import "fmt"

// Metadata holds the video information returned by format discovery.
type Metadata struct {
	ID       string
	Title    string
	Uploader string
	Duration int // seconds
	Formats  []Format
}

// DurationString formats the duration as HH:MM:SS, or MM:SS under an hour.
func (m *Metadata) DurationString() string {
	hours := m.Duration / 3600
	minutes := (m.Duration % 3600) / 60
	seconds := m.Duration % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DefaultStem returns the sanitized title for use as a default filename stem.
func (m *Metadata) DefaultStem() string {
	return SanitizeFilename(m.Title)
}
