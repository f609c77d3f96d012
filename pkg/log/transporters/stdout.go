// Package transporters holds the log destinations wired by cmd/server.
package transporters

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"trendboard/pkg/log"
)

// Stdout writes line-delimited JSON entries.
type Stdout struct {
	writer io.Writer
}

// NewStdout writes to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

// NewStdoutWithWriter writes to w instead of os.Stdout.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{writer: w}
}

// Name returns "stdout".
func (s *Stdout) Name() string {
	return "stdout"
}

// Write encodes the entry as one JSON line.
func (s *Stdout) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = s.writer.Write(append(data, '\n'))
	return err
}

// Close syncs the writer when it is backed by a file.
func (s *Stdout) Close() error {
	if f, ok := s.writer.(interface{ Sync() error }); ok {
		// Sync on a terminal or pipe reports EINVAL; nothing was lost.
		_ = f.Sync()
	}
	return nil
}
