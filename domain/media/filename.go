package media

import (
	"strings"
	"unicode/utf8"
)

// DefaultStem replaces an empty sanitized title.
const DefaultStem = "video"

// maxStemLength caps the sanitized stem so templates stay under common
// filesystem limits once the extension is appended.
const maxStemLength = 120

var stemReplacer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-", "|", "-",
	"?", "", "!", "", "\"", "", "<", "", ">", "", "\x00", "",
)

// SanitizeFilename turns an arbitrary title into a single safe path
// component, preserving readability. Used only for default filename stems;
// operator-supplied names are taken verbatim.
func SanitizeFilename(title string) string {
	s := stemReplacer.Replace(title)
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxStemLength {
		cut := maxStemLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	s = strings.Trim(s, ". ")
	if s == "" {
		return DefaultStem
	}
	return s
}
