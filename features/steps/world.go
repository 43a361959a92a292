//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"yt-media-fetch/cmd"
	"yt-media-fetch/domain/media"

	"github.com/cucumber/godog"
)

// scriptedPrompter replays prepared answers; an empty answer accepts the
// prompt's default, like pressing enter.
type scriptedPrompter struct {
	inputs  []string
	selects []string
}

func (p *scriptedPrompter) Input(message, defaultValue string) (string, error) {
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt: %s", message)
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	if v == "" {
		return defaultValue, nil
	}
	return v, nil
}

func (p *scriptedPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if len(p.selects) == 0 {
		return "", fmt.Errorf("unexpected select prompt: %s", message)
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	if v == "" {
		return defaultValue, nil
	}
	return v, nil
}

func (p *scriptedPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

// stubLocator resolves the toolchain to fixed paths or fails
type stubLocator struct {
	paths media.ToolchainPaths
	err   error
}

func (l *stubLocator) Locate(ctx context.Context) (media.ToolchainPaths, error) {
	return l.paths, l.err
}

// stubDiscoverer serves prepared metadata and counts calls
type stubDiscoverer struct {
	meta  *media.Metadata
	calls int
}

func (d *stubDiscoverer) Discover(ctx context.Context, url string) (*media.Metadata, error) {
	d.calls++
	if d.meta == nil {
		return nil, fmt.Errorf("no metadata prepared for %s", url)
	}
	return d.meta, nil
}

// recordingFetcher records every request and can fail selected URLs
type recordingFetcher struct {
	requests []*media.Request
	failures map[string]error
}

func (f *recordingFetcher) Fetch(ctx context.Context, req *media.Request, sink media.ProgressSink) (*media.Result, error) {
	f.requests = append(f.requests, req)
	if err := f.failures[req.URL]; err != nil {
		return nil, err
	}
	return &media.Result{Path: req.OutputDir + "/out." + req.FinalExt(), Size: 1 << 20}, nil
}

// memFiles simulates the filesystem
type memFiles struct {
	existing map[string]bool
}

func (m *memFiles) Exists(path string) bool { return m.existing[path] }
func (m *memFiles) EnsureDir(path string) error {
	m.existing[path] = true
	return nil
}

// world holds the shared scenario state
type world struct {
	prompter   *scriptedPrompter
	locator    *stubLocator
	discoverer *stubDiscoverer
	fetcher    *recordingFetcher
	files      *memFiles
	urlLists   map[string][]string
	out        *bytes.Buffer
	err        error
}

// SharedWorld is reset before each scenario via Before hook
var SharedWorld *world

func getWorld() *world {
	return SharedWorld
}

func (w *world) deps() *cmd.Deps {
	return &cmd.Deps{
		Locator:    w.locator,
		Discoverer: w.discoverer,
		NewFetcher: func(paths media.ToolchainPaths) media.Fetcher { return w.fetcher },
		Files:      w.files,
		ReadURLs: func(path string) ([]string, error) {
			urls, ok := w.urlLists[path]
			if !ok {
				return nil, fmt.Errorf("no such file: %s", path)
			}
			return urls, nil
		},
		Prompter:   w.prompter,
		Out:        w.out,
		NewSink:    func(name string) media.ProgressSink { return media.NopSink{} },
		DefaultDir: media.DefaultOutputDir,
	}
}

// InitializeWorld registers the scenario lifecycle and the steps shared by
// every feature.
func InitializeWorld(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedWorld = &world{
			prompter:   &scriptedPrompter{},
			locator:    &stubLocator{paths: media.ToolchainPaths{FFmpeg: "/usr/bin/ffmpeg", FFprobe: "/usr/bin/ffprobe"}},
			discoverer: &stubDiscoverer{},
			fetcher:    &recordingFetcher{failures: map[string]error{}},
			files:      &memFiles{existing: map[string]bool{}},
			urlLists:   map[string][]string{},
			out:        &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedWorld = nil
		return c, nil
	})

	ctx.Step(`^the toolchain is installed$`, theToolchainIsInstalled)
	ctx.Step(`^the toolchain is installed at "([^"]*)"$`, theToolchainIsInstalledAt)
	ctx.Step(`^the toolchain is missing$`, theToolchainIsMissing)
	ctx.Step(`^the video "([^"]*)" offers formats:$`, theVideoOffersFormats)
	ctx.Step(`^the output should mention "([^"]*)"$`, theOutputShouldMention)
	ctx.Step(`^the output should report "([^"]*)"$`, theOutputShouldMention)
	ctx.Step(`^the operation should fail with a toolchain error$`, theOperationShouldFailWithAToolchainError)
	ctx.Step(`^no format discovery should have happened$`, noFormatDiscoveryShouldHaveHappened)
}

func theToolchainIsInstalled() error {
	return nil // the default world state
}

func theToolchainIsInstalledAt(ffmpeg string) error {
	w := getWorld()
	w.locator.paths = media.ToolchainPaths{FFmpeg: ffmpeg, FFprobe: strings.TrimSuffix(ffmpeg, "ffmpeg") + "ffprobe"}
	return nil
}

func theToolchainIsMissing() error {
	w := getWorld()
	w.locator.err = fmt.Errorf("%w: ffmpeg not found in PATH", media.ErrToolchainMissing)
	return nil
}

func theVideoOffersFormats(title string, table *godog.Table) error {
	w := getWorld()
	meta := &media.Metadata{Title: title, Uploader: "Test Channel", Duration: 212}

	for i, row := range table.Rows {
		if i == 0 {
			continue // header row
		}
		abr, err := strconv.Atoi(row.Cells[3].Value)
		if err != nil {
			return fmt.Errorf("bad abr in row %d: %v", i, err)
		}
		meta.Formats = append(meta.Formats, media.Format{
			ID:           row.Cells[0].Value,
			Ext:          row.Cells[1].Value,
			Resolution:   row.Cells[2].Value,
			AudioBitrate: abr,
			VideoCodec:   row.Cells[4].Value,
			AudioCodec:   row.Cells[5].Value,
		})
	}

	w.discoverer.meta = meta
	return nil
}

func theOutputShouldMention(text string) error {
	w := getWorld()
	if !strings.Contains(w.out.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, w.out.String())
	}
	return nil
}

func theOperationShouldFailWithAToolchainError() error {
	w := getWorld()
	if w.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !errors.Is(w.err, media.ErrToolchainMissing) {
		return fmt.Errorf("expected a toolchain error, got: %v", w.err)
	}
	return nil
}

func noFormatDiscoveryShouldHaveHappened() error {
	w := getWorld()
	if w.discoverer.calls != 0 {
		return fmt.Errorf("expected no discovery calls, got %d", w.discoverer.calls)
	}
	return nil
}
