package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"yt-media-fetch/domain/media"
)

type mockPrompter struct {
	inputs   []string
	selects  []string
	confirms []bool
}

func (m *mockPrompter) Input(message, defaultValue string) (string, error) {
	if len(m.inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt: %s", message)
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	if v == "" {
		return defaultValue, nil
	}
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if len(m.selects) == 0 {
		return "", fmt.Errorf("unexpected select prompt: %s", message)
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	if v == "" {
		return defaultValue, nil
	}
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if len(m.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt: %s", message)
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

type mockLocator struct {
	paths media.ToolchainPaths
	err   error
}

func (m *mockLocator) Locate(ctx context.Context) (media.ToolchainPaths, error) {
	return m.paths, m.err
}

// verifyingLocator additionally records VerifyInstalled calls
type verifyingLocator struct {
	mockLocator
	verifyErr   error
	verifyCalls int
}

func (l *verifyingLocator) VerifyInstalled(ctx context.Context) error {
	l.verifyCalls++
	return l.verifyErr
}

type mockDiscoverer struct {
	meta  *media.Metadata
	err   error
	calls int
}

func (m *mockDiscoverer) Discover(ctx context.Context, url string) (*media.Metadata, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.meta, nil
}

type mockFetcher struct {
	requests []*media.Request
	errFor   map[string]error
	result   media.Result
}

func (m *mockFetcher) Fetch(ctx context.Context, req *media.Request, sink media.ProgressSink) (*media.Result, error) {
	m.requests = append(m.requests, req)
	if err := m.errFor[req.URL]; err != nil {
		return nil, err
	}
	r := m.result
	if r.Path == "" {
		r.Path = "downloads/out.mp4"
	}
	return &r, nil
}

type mockFiles struct {
	existing map[string]bool
	dirs     []string
}

func (m *mockFiles) Exists(path string) bool {
	return m.existing[path]
}

func (m *mockFiles) EnsureDir(path string) error {
	m.dirs = append(m.dirs, path)
	return nil
}

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func testMetadata() *media.Metadata {
	return &media.Metadata{
		ID:       "dQw4w9WgXcQ",
		Title:    "Test Video",
		Uploader: "Test Channel",
		Duration: 212,
		Formats: []media.Format{
			{ID: "22", Ext: "mp4", Resolution: "720p", VideoCodec: "avc1", AudioCodec: "mp4a"},
			{ID: "140", Ext: "m4a", Resolution: media.UnknownResolution, AudioBitrate: 128, VideoCodec: media.CodecNone, AudioCodec: "mp4a"},
		},
	}
}

type testEnv struct {
	deps       *Deps
	prompter   *mockPrompter
	locator    *mockLocator
	discoverer *mockDiscoverer
	fetcher    *mockFetcher
	files      *mockFiles
	out        *bytes.Buffer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		prompter:   &mockPrompter{},
		locator:    &mockLocator{paths: media.ToolchainPaths{FFmpeg: "/usr/bin/ffmpeg", FFprobe: "/usr/bin/ffprobe"}},
		discoverer: &mockDiscoverer{meta: testMetadata()},
		fetcher:    &mockFetcher{},
		files:      &mockFiles{existing: map[string]bool{}},
		out:        &bytes.Buffer{},
	}
	env.deps = &Deps{
		Locator:    env.locator,
		Discoverer: env.discoverer,
		NewFetcher: func(paths media.ToolchainPaths) media.Fetcher { return env.fetcher },
		Files:      env.files,
		Prompter:   env.prompter,
		Out:        env.out,
		NewSink:    func(name string) media.ProgressSink { return media.NopSink{} },
		DefaultDir: media.DefaultOutputDir,
	}
	return env
}

func TestRunFetchAudioSelectionDefaultsToMP3(t *testing.T) {
	env := newTestEnv()
	// format choice, output dir (default), filename (default)
	env.prompter.inputs = []string{"2", "", ""}
	// conversion select, accept the default (MP3)
	env.prompter.selects = []string{""}

	if err := RunFetchWithDependencies(context.Background(), env.deps, testURL, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.fetcher.requests) != 1 {
		t.Fatalf("expected 1 download, got %d", len(env.fetcher.requests))
	}
	req := env.fetcher.requests[0]
	if req.FormatID != "140" {
		t.Errorf("expected format 140, got %q", req.FormatID)
	}
	if req.Conversion != media.ConvertMP3 {
		t.Errorf("expected MP3 conversion, got %q", req.Conversion)
	}
	if req.OutputDir != media.DefaultOutputDir {
		t.Errorf("expected default output dir, got %q", req.OutputDir)
	}
	if req.FilenameStem != "Test Video" {
		t.Errorf("expected stem from the title, got %q", req.FilenameStem)
	}
	if len(env.files.dirs) != 1 || env.files.dirs[0] != media.DefaultOutputDir {
		t.Errorf("expected output dir to be created, got %v", env.files.dirs)
	}
}

func TestRunFetchInvalidChoicesReprompt(t *testing.T) {
	env := newTestEnv()
	env.prompter.inputs = []string{"99", "abc", "1", "", ""}

	if err := RunFetchWithDependencies(context.Background(), env.deps, testURL, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.fetcher.requests) != 1 {
		t.Fatalf("expected 1 download, got %d", len(env.fetcher.requests))
	}
	if got := env.fetcher.requests[0].FormatID; got != "22" {
		t.Errorf("expected format 22, got %q", got)
	}
	if !strings.Contains(env.out.String(), "out of range") {
		t.Errorf("expected out-of-range message, got: %s", env.out.String())
	}
}

func TestRunFetchQuitCancelsWithoutDownload(t *testing.T) {
	env := newTestEnv()
	env.prompter.inputs = []string{"q"}

	if err := RunFetchWithDependencies(context.Background(), env.deps, testURL, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.fetcher.requests) != 0 {
		t.Fatalf("expected no downloads after quitting, got %d", len(env.fetcher.requests))
	}
	if !strings.Contains(env.out.String(), "Selection cancelled") {
		t.Errorf("expected cancellation notice, got: %s", env.out.String())
	}
}

func TestRunFetchToolchainMissingSkipsDiscovery(t *testing.T) {
	env := newTestEnv()
	env.locator.err = fmt.Errorf("%w: ffmpeg not found in PATH", media.ErrToolchainMissing)

	err := RunFetchWithDependencies(context.Background(), env.deps, testURL, "", "")
	if !errors.Is(err, media.ErrToolchainMissing) {
		t.Fatalf("expected ErrToolchainMissing, got %v", err)
	}
	if env.discoverer.calls != 0 {
		t.Errorf("expected no discovery call, got %d", env.discoverer.calls)
	}
}

func TestRunFetchNoSelectableFormats(t *testing.T) {
	env := newTestEnv()
	env.discoverer.meta = &media.Metadata{
		Title: "Storyboards Only",
		Formats: []media.Format{
			{ID: "sb0", Ext: "mhtml", VideoCodec: media.CodecNone, AudioCodec: media.CodecNone},
		},
	}

	err := RunFetchWithDependencies(context.Background(), env.deps, testURL, "", "")
	if !errors.Is(err, media.ErrNoFormats) {
		t.Fatalf("expected ErrNoFormats, got %v", err)
	}
	if len(env.fetcher.requests) != 0 {
		t.Errorf("expected no downloads, got %d", len(env.fetcher.requests))
	}
}

func TestRunFetchRejectsInvalidURL(t *testing.T) {
	env := newTestEnv()

	err := RunFetchWithDependencies(context.Background(), env.deps, "https://example.com/watch", "", "")
	if err == nil || !strings.Contains(err.Error(), "valid YouTube URL") {
		t.Fatalf("expected URL validation error, got %v", err)
	}
	if env.discoverer.calls != 0 {
		t.Errorf("expected no discovery call, got %d", env.discoverer.calls)
	}
}

func TestRunVideoUsesBestVideoPolicy(t *testing.T) {
	env := newTestEnv()

	if err := RunVideoWithDependencies(context.Background(), env.deps, testURL, "clips"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.fetcher.requests) != 1 {
		t.Fatalf("expected 1 download, got %d", len(env.fetcher.requests))
	}
	req := env.fetcher.requests[0]
	if req.Policy != media.PolicyBestVideo {
		t.Errorf("expected best-video policy, got %q", req.Policy)
	}
	if req.MergeContainer != media.MergedContainer {
		t.Errorf("expected merged container %q, got %q", media.MergedContainer, req.MergeContainer)
	}
	if req.OutputDir != "clips" {
		t.Errorf("expected output dir clips, got %q", req.OutputDir)
	}
}

func TestRunAudioConvertsToWAV(t *testing.T) {
	env := newTestEnv()

	if err := RunAudioWithDependencies(context.Background(), env.deps, testURL, "", media.ConvertWAV); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := env.fetcher.requests[0]
	if req.Policy != media.PolicyBestAudio {
		t.Errorf("expected best-audio policy, got %q", req.Policy)
	}
	if req.Conversion != media.ConvertWAV {
		t.Errorf("expected WAV conversion, got %q", req.Conversion)
	}
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	env := newTestEnv()
	env.files.existing["urls.txt"] = true
	env.deps.ReadURLs = func(path string) ([]string, error) {
		return []string{
			"https://youtu.be/aaa",
			"https://youtu.be/bbb",
			"https://youtu.be/ccc",
		}, nil
	}
	env.fetcher.errFor = map[string]error{"https://youtu.be/bbb": errors.New("HTTP 403")}

	if err := RunBatchWithDependencies(context.Background(), env.deps, "urls.txt", "", "best-video"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "2/3 successful") {
		t.Errorf("expected 2/3 successful summary, got: %s", out)
	}
	if !strings.Contains(out, "Skipping https://youtu.be/bbb") {
		t.Errorf("expected skip notice for the failing URL, got: %s", out)
	}
	if len(env.fetcher.requests) != 3 {
		t.Errorf("expected 3 attempts, got %d", len(env.fetcher.requests))
	}
}

func TestRunBatchFileNotFound(t *testing.T) {
	env := newTestEnv()

	err := RunBatchWithDependencies(context.Background(), env.deps, "missing.txt", "", "best-video")
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file-not-found error, got %v", err)
	}
}

func TestRunBatchUnknownStrategy(t *testing.T) {
	env := newTestEnv()

	err := RunBatchWithDependencies(context.Background(), env.deps, "urls.txt", "", "fastest")
	if err == nil || !strings.Contains(err.Error(), "unknown strategy") {
		t.Fatalf("expected unknown-strategy error, got %v", err)
	}
}

func TestCheckToolchainVerifiesWhenConfigured(t *testing.T) {
	env := newTestEnv()
	locator := &verifyingLocator{mockLocator: *env.locator}
	env.deps.Locator = locator
	env.deps.VerifyToolchain = true

	if err := RunVideoWithDependencies(context.Background(), env.deps, testURL, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locator.verifyCalls != 1 {
		t.Errorf("expected 1 verification, got %d", locator.verifyCalls)
	}

	locator.verifyErr = fmt.Errorf("%w: ffmpeg not executable", media.ErrToolchainMissing)
	err := RunVideoWithDependencies(context.Background(), env.deps, testURL, "")
	if !errors.Is(err, media.ErrToolchainMissing) {
		t.Fatalf("expected ErrToolchainMissing, got %v", err)
	}
	if len(env.fetcher.requests) != 1 {
		t.Errorf("expected no download after failed verification, got %d total", len(env.fetcher.requests))
	}
}

func TestCheckToolchainSkipsVerificationByDefault(t *testing.T) {
	env := newTestEnv()
	locator := &verifyingLocator{
		mockLocator: *env.locator,
		verifyErr:   fmt.Errorf("%w: ffmpeg not executable", media.ErrToolchainMissing),
	}
	env.deps.Locator = locator

	if err := RunVideoWithDependencies(context.Background(), env.deps, testURL, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locator.verifyCalls != 0 {
		t.Errorf("expected no verification calls, got %d", locator.verifyCalls)
	}
}

func TestRunMenuExit(t *testing.T) {
	env := newTestEnv()
	env.prompter.selects = []string{menuExit}

	if err := RunMenu(context.Background(), env.deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.out.String(), "Goodbye!") {
		t.Errorf("expected goodbye message, got: %s", env.out.String())
	}
}

func TestRunMenuReportsFailureAndContinues(t *testing.T) {
	env := newTestEnv()
	env.locator.err = fmt.Errorf("%w: ffmpeg not found in PATH", media.ErrToolchainMissing)
	env.prompter.selects = []string{menuBestVideo, menuExit}
	env.prompter.inputs = []string{testURL}

	if err := RunMenu(context.Background(), env.deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(env.out.String(), "Operation failed") {
		t.Errorf("expected failure notice, got: %s", env.out.String())
	}
	if env.discoverer.calls != 0 {
		t.Errorf("expected no discovery call, got %d", env.discoverer.calls)
	}
	if len(env.fetcher.requests) != 0 {
		t.Errorf("expected no downloads, got %d", len(env.fetcher.requests))
	}
}
