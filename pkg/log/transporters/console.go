package transporters

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"trendboard/pkg/log"
)

// Console renders entries for humans using zerolog's ConsoleWriter.
// Intended for local development; production uses Stdout.
type Console struct {
	writer zerolog.ConsoleWriter
}

// NewConsole writes colored output to os.Stderr.
func NewConsole() *Console {
	return NewConsoleWithWriter(os.Stderr, false)
}

// NewConsoleWithWriter writes to w, optionally without ANSI colors.
func NewConsoleWithWriter(w io.Writer, noColor bool) *Console {
	return &Console{writer: zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}}
}

// Name returns "console".
func (c *Console) Name() string {
	return "console"
}

// Write re-keys the entry with zerolog's field names and hands it to the
// ConsoleWriter, which parses JSON events.
func (c *Console) Write(entry log.Entry) error {
	event := make(map[string]any, len(entry.Fields)+4)
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		event[k] = v
	}
	if entry.RequestID != "" {
		event["request_id"] = entry.RequestID
	}
	event[zerolog.TimestampFieldName] = entry.Timestamp.Format(time.RFC3339)
	event[zerolog.LevelFieldName] = strings.ToLower(entry.Level.String())
	event[zerolog.MessageFieldName] = entry.Message
	if entry.Caller != "" {
		event[zerolog.CallerFieldName] = entry.Caller
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = c.writer.Write(data)
	return err
}

// Close is a no-op.
func (c *Console) Close() error {
	return nil
}
