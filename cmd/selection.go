package cmd

import (
	"context"
	"fmt"

	"yt-media-fetch/application/fetch"
	"yt-media-fetch/domain/media"
)

// promptURL asks for a YouTube URL until a valid one is entered.
func promptURL(deps *Deps) (string, error) {
	for {
		url, err := deps.Prompter.Input("Enter YouTube URL", "")
		if err != nil {
			return "", err
		}
		if media.ValidYouTubeURL(url) {
			return url, nil
		}
		fmt.Fprintln(deps.Out, "Please enter a valid YouTube URL")
	}
}

// renderSelection prints the video details and the numbered format menu.
func renderSelection(out OutputWriter, meta *media.Metadata, sel media.Selection) {
	fmt.Fprintf(out, "\nTitle: %s\n", meta.Title)
	fmt.Fprintf(out, "Duration: %s\n", meta.DurationString())
	fmt.Fprintf(out, "Channel: %s\n", meta.Uploader)

	if video := sel.VideoOptions(); len(video) > 0 {
		fmt.Fprintln(out, "\nVideo formats (with audio):")
		for _, o := range video {
			fmt.Fprintf(out, "  %s\n", o)
		}
	}
	if audio := sel.AudioOptions(); len(audio) > 0 {
		fmt.Fprintln(out, "\nAudio-only formats:")
		for _, o := range audio {
			fmt.Fprintf(out, "  %s\n", o)
		}
	}
}

// promptFormat asks for a menu choice until it resolves, reporting invalid
// input and asking again. Returns quit=true when the operator cancels.
func promptFormat(deps *Deps, sel media.Selection) (media.Format, bool, error) {
	message := fmt.Sprintf("Select format (1-%d, or '%s' to quit)", sel.Total(), media.QuitToken)
	for {
		input, err := deps.Prompter.Input(message, "")
		if err != nil {
			return media.Format{}, false, err
		}
		format, quit, err := sel.Resolve(input)
		if err != nil {
			fmt.Fprintf(deps.Out, "%v\n", err)
			continue
		}
		return format, quit, nil
	}
}

const (
	convOptionMP3  = "MP3 (most compatible)"
	convOptionWAV  = "WAV (lossless, large file)"
	convOptionKeep = "Keep original format"
)

// promptConversion asks how an audio-only download should be converted.
// MP3 is the default.
func promptConversion(deps *Deps) (media.AudioConversion, error) {
	choice, err := deps.Prompter.Select(
		"Audio format",
		[]string{convOptionMP3, convOptionWAV, convOptionKeep},
		convOptionMP3,
	)
	if err != nil {
		return media.ConvertNone, err
	}
	switch choice {
	case convOptionWAV:
		return media.ConvertWAV, nil
	case convOptionKeep:
		return media.ConvertNone, nil
	default:
		return media.ConvertMP3, nil
	}
}

// reportResult prints where a download landed and how large it is.
func reportResult(out OutputWriter, title string, result *media.Result) {
	if title != "" {
		fmt.Fprintf(out, "Successfully downloaded: %s\n", title)
	}
	fmt.Fprintf(out, "Saved as: %s\n", result.Path)
	if result.Size > 0 {
		fmt.Fprintf(out, "Size: %.2f MB\n", result.SizeMB())
	}
}

// downloadWithSelection runs discovery and the format selection menu for one
// URL, then downloads the chosen format. The filename stem is derived from
// the video title. Batch interactive mode reuses this per item.
func downloadWithSelection(ctx context.Context, deps *Deps, svc *fetch.Service, url, outputDir string) (*media.Result, error) {
	meta, err := svc.Discover(ctx, url)
	if err != nil {
		return nil, err
	}

	sel := media.BuildSelection(meta.Formats)
	if sel.Total() == 0 {
		return nil, media.ErrNoFormats
	}
	renderSelection(deps.Out, meta, sel)

	format, quit, err := promptFormat(deps, sel)
	if err != nil {
		return nil, err
	}
	if quit {
		return nil, fmt.Errorf("selection cancelled")
	}

	conv := media.ConvertNone
	if format.IsAudioOnly() {
		if conv, err = promptConversion(deps); err != nil {
			return nil, err
		}
	}

	req, err := media.NewFormatRequest(url, format, outputDir, meta.DefaultStem(), conv)
	if err != nil {
		return nil, err
	}

	sink := deps.NewSink(meta.DefaultStem())
	result, err := svc.Download(ctx, req, sink)
	waitSink(sink)
	return result, err
}
