package filesystem

import (
	"os"

	"yt-media-fetch/domain/media"
)

// Checker implements media.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the byte size of the file at path
func (c *Checker) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// EnsureDir creates the directory recursively if it does not exist
func (c *Checker) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Ensure Checker implements media.FileChecker
var _ media.FileChecker = (*Checker)(nil)
