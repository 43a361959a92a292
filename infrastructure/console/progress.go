// Package console renders download progress as a self-updating status line.
package console

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"

	"yt-media-fetch/domain/media"
)

// provisionalTotal keeps the bar moving before the library reports a size.
const provisionalTotal = 100 * 1024 * 1024 * 1024

// ProgressRenderer implements media.ProgressSink with an mpb bar showing
// percentage, transfer speed, and the download name.
type ProgressRenderer struct {
	progress  *mpb.Progress
	bar       *mpb.Bar
	start     time.Time
	lastCount int64
}

// NewProgressRenderer creates a renderer writing to w.
func NewProgressRenderer(w io.Writer, name string) *ProgressRenderer {
	progress := mpb.New(
		mpb.WithWidth(64),
		mpb.WithOutput(w),
	)
	bar := progress.AddBar(provisionalTotal,
		mpb.BarWidth(12),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.AverageSpeed(decor.UnitKB, " %.1f", decor.WC{W: 15, C: decor.DidentRight}),
			decor.AverageETA(decor.ET_STYLE_MMSS, decor.WC{W: 6}),
			decor.Name(name),
		),
		mpb.BarRemoveOnComplete(),
	)
	return &ProgressRenderer{
		progress: progress,
		bar:      bar,
		start:    time.Now(),
	}
}

// Publish implements media.ProgressSink.
func (r *ProgressRenderer) Publish(ev media.ProgressEvent) {
	if ev.Finished {
		total := r.lastCount
		if total == 0 {
			total = 1
		}
		r.bar.SetTotal(total, true)
		return
	}

	total := ev.TotalBytes
	if total <= 0 {
		total = provisionalTotal
	}
	r.bar.SetTotal(total, false)
	r.bar.IncrInt64(ev.DownloadedBytes-r.lastCount, time.Since(r.start))
	r.lastCount = ev.DownloadedBytes
}

// Wait flushes the bar after the download finishes.
func (r *ProgressRenderer) Wait() {
	r.progress.Wait()
}

// Ensure ProgressRenderer implements media.ProgressSink
var _ media.ProgressSink = (*ProgressRenderer)(nil)
