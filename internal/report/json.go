package report

import (
	"encoding/json"
	"io"

	"github.com/mkobayashi/webwords/internal/model"
)

// JSONWriter outputs crawl summaries in JSON for tool integration.
//
// Design decision: Standard encoding/json is enough here; the summary is
// written once per run and needs no streaming or custom encoding.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the crawl summary as JSON.
func (w *JSONWriter) Write(result *model.CrawlResult) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal friendliness.
	data = append(data, '\n')

	return w.output.Write(data)
}
