package media

// Result reports a completed download.
type Result struct {
	Path string
	Size int64 // bytes
}

// SizeMB returns the file size in megabytes for reporting.
func (r Result) SizeMB() float64 {
	return float64(r.Size) / (1024 * 1024)
}
