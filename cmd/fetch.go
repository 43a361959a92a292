package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"yt-media-fetch/domain/media"
)

var (
	fetchOutputDir string
	fetchFilename  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download one video or audio stream with format selection",
	Long: `Fetch discovers the available formats for a URL, shows them as a
numbered menu, and downloads the one you pick. Audio-only picks can be
converted to MP3 or WAV. Without a URL argument you are prompted for one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchOutputDir, "dir", "d", "", "output directory (default \"downloads\")")
	fetchCmd.Flags().StringVarP(&fetchFilename, "filename", "f", "", "filename without extension (default derived from the title)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := ensureExtractor(cmd.Context()); err != nil {
		return err
	}
	url := ""
	if len(args) > 0 {
		url = args[0]
	}
	return RunFetchWithDependencies(cmd.Context(), productionDeps(GetConfig()), url, fetchOutputDir, fetchFilename)
}

// RunFetchWithDependencies runs the single-download flow with injected
// dependencies (for testing). An empty url, outputDir, or stem is prompted
// for interactively.
func RunFetchWithDependencies(ctx context.Context, deps *Deps, url, outputDir, stem string) error {
	paths, err := checkToolchain(ctx, deps)
	if err != nil {
		return err
	}

	if url == "" {
		if url, err = promptURL(deps); err != nil {
			return err
		}
	} else if !media.ValidYouTubeURL(url) {
		return fmt.Errorf("not a valid YouTube URL: %s", url)
	}

	svc := deps.service(paths)
	meta, err := svc.Discover(ctx, url)
	if err != nil {
		return err
	}

	sel := media.BuildSelection(meta.Formats)
	if sel.Total() == 0 {
		return media.ErrNoFormats
	}
	renderSelection(deps.Out, meta, sel)

	format, quit, err := promptFormat(deps, sel)
	if err != nil {
		return err
	}
	if quit {
		fmt.Fprintln(deps.Out, "Selection cancelled.")
		return nil
	}

	conv := media.ConvertNone
	if format.IsAudioOnly() {
		if conv, err = promptConversion(deps); err != nil {
			return err
		}
	}

	if outputDir == "" {
		if outputDir, err = deps.Prompter.Input("Output directory", deps.DefaultDir); err != nil {
			return err
		}
		if outputDir == "" {
			outputDir = deps.DefaultDir
		}
	}
	if stem == "" {
		if stem, err = deps.Prompter.Input("Filename (without extension)", meta.DefaultStem()); err != nil {
			return err
		}
		if stem == "" {
			stem = meta.DefaultStem()
		}
	}

	if err := deps.Files.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	req, err := media.NewFormatRequest(url, format, outputDir, stem, conv)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Out, "Starting download: %s\n", format.Label())
	sink := deps.NewSink(stem)
	result, err := svc.Download(ctx, req, sink)
	waitSink(sink)
	if err != nil {
		return err
	}

	reportResult(deps.Out, meta.Title, result)
	return nil
}
