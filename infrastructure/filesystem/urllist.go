package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseURLList reads newline-delimited URLs: whitespace is trimmed, blank
// lines are skipped. There is no comment syntax.
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url list: %w", err)
	}
	return urls, nil
}

// ReadURLList loads a URL list from a file.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open url list: %w", err)
	}
	defer f.Close()

	return ParseURLList(f)
}
