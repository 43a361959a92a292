//go:build integration

package steps

import (
	"context"

	"yt-media-fetch/cmd"

	"github.com/cucumber/godog"
)

func InitializeToolchainScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^I request the best video for "([^"]*)"$`, iRequestTheBestVideoFor)
	ctx.Step(`^I request a batch for "([^"]*)"$`, iRequestABatchFor)
}

func iRequestTheBestVideoFor(url string) error {
	w := getWorld()
	w.err = cmd.RunVideoWithDependencies(context.Background(), w.deps(), url, "")
	return nil
}

func iRequestABatchFor(file string) error {
	w := getWorld()
	w.err = cmd.RunBatchWithDependencies(context.Background(), w.deps(), file, "", "best-video")
	return nil
}
