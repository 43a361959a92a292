//go:build integration

package steps

import (
	"context"
	"fmt"

	"yt-media-fetch/cmd"
	"yt-media-fetch/domain/media"

	"github.com/cucumber/godog"
)

func InitializeDownloadScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^I download "([^"]*)" choosing option "([^"]*)" and accepting the defaults$`, iDownloadChoosingOption)
	ctx.Step(`^I download "([^"]*)" entering "([^"]*)" then "([^"]*)" and accepting the defaults$`, iDownloadEnteringThen)
	ctx.Step(`^the download should target format "([^"]*)"$`, theDownloadShouldTargetFormat)
	ctx.Step(`^the download should convert the audio to "([^"]*)"$`, theDownloadShouldConvertTheAudioTo)
	ctx.Step(`^the download should land in "([^"]*)"$`, theDownloadShouldLandIn)
	ctx.Step(`^no download should be started$`, noDownloadShouldBeStarted)
}

func iDownloadChoosingOption(url, choice string) error {
	w := getWorld()
	// format choice, then accept the directory and filename defaults
	w.prompter.inputs = []string{choice, "", ""}
	// accept the conversion default when an audio entry was picked
	w.prompter.selects = []string{""}

	w.err = cmd.RunFetchWithDependencies(context.Background(), w.deps(), url, "", "")
	return nil
}

func iDownloadEnteringThen(url, first, second string) error {
	w := getWorld()
	w.prompter.inputs = []string{first, second, "", ""}
	w.prompter.selects = []string{""}

	w.err = cmd.RunFetchWithDependencies(context.Background(), w.deps(), url, "", "")
	return nil
}

func theDownloadShouldTargetFormat(id string) error {
	w := getWorld()
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	if len(w.fetcher.requests) == 0 {
		return fmt.Errorf("no download was started")
	}
	if got := w.fetcher.requests[0].FormatID; got != id {
		return fmt.Errorf("expected format %q, got %q", id, got)
	}
	return nil
}

func theDownloadShouldConvertTheAudioTo(target string) error {
	w := getWorld()
	if len(w.fetcher.requests) == 0 {
		return fmt.Errorf("no download was started")
	}
	if got := w.fetcher.requests[0].Conversion; got != media.AudioConversion(target) {
		return fmt.Errorf("expected conversion %q, got %q", target, got)
	}
	return nil
}

func theDownloadShouldLandIn(dir string) error {
	w := getWorld()
	if len(w.fetcher.requests) == 0 {
		return fmt.Errorf("no download was started")
	}
	if got := w.fetcher.requests[0].OutputDir; got != dir {
		return fmt.Errorf("expected output dir %q, got %q", dir, got)
	}
	if !w.files.existing[dir] {
		return fmt.Errorf("expected the output dir %q to have been created", dir)
	}
	return nil
}

func noDownloadShouldBeStarted() error {
	w := getWorld()
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	if len(w.fetcher.requests) != 0 {
		return fmt.Errorf("expected no downloads, got %d", len(w.fetcher.requests))
	}
	return nil
}
