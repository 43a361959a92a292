//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yt-media-fetch/cmd"
	"yt-media-fetch/domain/media"

	"github.com/cucumber/godog"
)

func InitializeBatchScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^a URL list "([^"]*)" containing:$`, aURLListContaining)
	ctx.Step(`^downloading "([^"]*)" fails with "([^"]*)"$`, downloadingFailsWith)
	ctx.Step(`^I run the batch with strategy "([^"]*)"$`, iRunTheBatchWithStrategy)
	ctx.Step(`^I run the batch with strategy "([^"]*)" against the missing file "([^"]*)"$`, iRunTheBatchAgainstMissingFile)
	ctx.Step(`^the batch summary should report "([^"]*)"$`, theBatchSummaryShouldReport)
	ctx.Step(`^(\d+) batch downloads should have been attempted$`, batchDownloadsShouldHaveBeenAttempted)
	ctx.Step(`^every batch download should convert the audio to "([^"]*)"$`, everyBatchDownloadShouldConvertTheAudioTo)
	ctx.Step(`^the batch should fail with "([^"]*)"$`, theBatchShouldFailWith)
}

const batchListFile = "urls.txt"

func aURLListContaining(file string, doc *godog.DocString) error {
	w := getWorld()
	var urls []string
	for _, line := range strings.Split(doc.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	w.urlLists[file] = urls
	w.files.existing[file] = true
	return nil
}

func downloadingFailsWith(url, message string) error {
	w := getWorld()
	w.fetcher.failures[url] = errors.New(message)
	return nil
}

func iRunTheBatchWithStrategy(strategy string) error {
	w := getWorld()
	w.err = cmd.RunBatchWithDependencies(context.Background(), w.deps(), batchListFile, "", strategy)
	return nil
}

func iRunTheBatchAgainstMissingFile(strategy, file string) error {
	w := getWorld()
	w.err = cmd.RunBatchWithDependencies(context.Background(), w.deps(), file, "", strategy)
	return nil
}

func theBatchSummaryShouldReport(summary string) error {
	w := getWorld()
	if w.err != nil {
		return fmt.Errorf("unexpected error: %v", w.err)
	}
	if !strings.Contains(w.out.String(), summary) {
		return fmt.Errorf("expected summary %q, got:\n%s", summary, w.out.String())
	}
	return nil
}

func batchDownloadsShouldHaveBeenAttempted(count int) error {
	w := getWorld()
	if len(w.fetcher.requests) != count {
		return fmt.Errorf("expected %d attempts, got %d", count, len(w.fetcher.requests))
	}
	return nil
}

func everyBatchDownloadShouldConvertTheAudioTo(target string) error {
	w := getWorld()
	if len(w.fetcher.requests) == 0 {
		return fmt.Errorf("no downloads were attempted")
	}
	for _, req := range w.fetcher.requests {
		if req.Conversion != media.AudioConversion(target) {
			return fmt.Errorf("expected conversion %q for %s, got %q", target, req.URL, req.Conversion)
		}
	}
	return nil
}

func theBatchShouldFailWith(message string) error {
	w := getWorld()
	if w.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(w.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got: %v", message, w.err)
	}
	return nil
}
