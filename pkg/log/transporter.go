package log

// Transporter is a destination for log entries (stdout, console, files...).
type Transporter interface {
	// Name identifies the transporter in diagnostics.
	Name() string

	// Write delivers one entry.
	Write(entry Entry) error

	// Close releases resources. Write is not called after Close.
	Close() error
}
