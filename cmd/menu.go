package cmd

import (
	"context"
	"fmt"

	"yt-media-fetch/domain/media"
)

const (
	menuSingle    = "Download single video/audio (choose format)"
	menuBatch     = "Batch download from file"
	menuBestVideo = "Download best video quality"
	menuAudioMP3  = "Download audio only (MP3)"
	menuAudioWAV  = "Download audio only (WAV)"
	menuExit      = "Exit"
)

var menuOptions = []string{
	menuSingle,
	menuBatch,
	menuBestVideo,
	menuAudioMP3,
	menuAudioWAV,
	menuExit,
}

// RunMenu drives the top-level interactive menu until the operator exits.
// Operation failures are reported and the menu continues.
func RunMenu(ctx context.Context, deps *Deps) error {
	fmt.Fprintln(deps.Out, "YouTube Media Downloader")
	fmt.Fprintln(deps.Out, "========================")

	for {
		choice, err := deps.Prompter.Select("Choose an option", menuOptions, menuSingle)
		if err != nil {
			// prompt aborted (EOF or interrupt)
			return err
		}

		var opErr error
		switch choice {
		case menuSingle:
			opErr = RunFetchWithDependencies(ctx, deps, "", "", "")
		case menuBatch:
			opErr = runBatchInteractive(ctx, deps)
		case menuBestVideo:
			opErr = runDirectVideo(ctx, deps)
		case menuAudioMP3:
			opErr = runDirectAudio(ctx, deps, media.ConvertMP3)
		case menuAudioWAV:
			opErr = runDirectAudio(ctx, deps, media.ConvertWAV)
		case menuExit:
			fmt.Fprintln(deps.Out, "Goodbye!")
			return nil
		}

		if opErr != nil {
			fmt.Fprintf(deps.Out, "Operation failed: %v\n", opErr)
		}
	}
}

// runDirectVideo prompts for a URL and downloads the best video quality
// into the default directory.
func runDirectVideo(ctx context.Context, deps *Deps) error {
	url, err := promptURL(deps)
	if err != nil {
		return err
	}
	return RunVideoWithDependencies(ctx, deps, url, "")
}

// runDirectAudio prompts for a URL and downloads the best audio stream with
// the given conversion into the default directory.
func runDirectAudio(ctx context.Context, deps *Deps, conv media.AudioConversion) error {
	url, err := promptURL(deps)
	if err != nil {
		return err
	}
	return RunAudioWithDependencies(ctx, deps, url, "", conv)
}
