package media

import "time"

// ProgressEvent is one status update emitted during a download.
type ProgressEvent struct {
	TotalBytes      int64
	DownloadedBytes int64
	Percent         float64
	Rate            float64 // bytes per second
	ETA             time.Duration
	Finished        bool
}

// ProgressSink receives progress events from an ongoing download. The
// download operation writes to it; any renderer can subscribe.
type ProgressSink interface {
	Publish(ev ProgressEvent)
}

// NopSink discards all events.
type NopSink struct{}

// Publish implements ProgressSink.
func (NopSink) Publish(ProgressEvent) {}
