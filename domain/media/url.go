package media

import "regexp"

var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)

// ValidYouTubeURL reports whether s looks like a YouTube video URL.
func ValidYouTubeURL(s string) bool {
	return youtubeURLPattern.MatchString(s)
}
