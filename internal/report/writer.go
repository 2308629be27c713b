package report

import (
	"io"

	"github.com/mkobayashi/webwords/internal/model"
)

// Writer outputs a crawl summary to a destination chosen at construction.
//
// Design decision: An interface lets the CLI write the same result to a
// file, stdout, or several destinations at once without caring about the
// format.
type Writer interface {
	// Write outputs the summary. Returns the number of bytes written
	// and any error encountered.
	Write(result *model.CrawlResult) (int, error)
}

// MultiWriter writes a result to multiple Writers, stopping on the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that fans out to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to every configured Writer.
func (m *MultiWriter) Write(result *model.CrawlResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
