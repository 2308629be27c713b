package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/mkobayashi/webwords/internal/model"
)

// maxTableWords caps how many ranked words the summary table shows.
// The full list belongs in the wordlist output, not the report.
const maxTableWords = 25

// MarkdownWriter outputs crawl summaries as GitHub Flavored Markdown,
// suitable for engagement notes and documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the crawl summary in Markdown format.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeTopWords(md, result)
	w.writeEmails(md, result)
	w.writeFailures(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the run metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.CrawlResult) {
	md.H1("Wordlist Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + result.Seed + "`"},
			{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", result.Elapsed.String()},
			{"Pages Fetched", strconv.Itoa(result.PagesFetched)},
			{"Pages Failed", strconv.Itoa(result.PagesFailed())},
			{"Unique Words", strconv.Itoa(result.UniqueWords())},
			{"Total Occurrences", strconv.Itoa(result.TotalOccurrences())},
			{"Emails Found", strconv.Itoa(len(result.Emails))},
		},
	})
	md.PlainText("")
}

// writeTopWords writes the highest-ranked words as a table.
func (w *MarkdownWriter) writeTopWords(md *markdown.Markdown, result *model.CrawlResult) {
	md.H2("Top Words")
	md.PlainText("")

	if len(result.Words) == 0 {
		md.PlainText("No words extracted.")
		md.PlainText("")
		return
	}

	words := result.Words
	if len(words) > maxTableWords {
		words = words[:maxTableWords]
	}

	rows := make([][]string, 0, len(words))
	for i, rw := range words {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rw.Word,
			strconv.Itoa(rw.Count),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Word", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeEmails writes the extracted email list.
func (w *MarkdownWriter) writeEmails(md *markdown.Markdown, result *model.CrawlResult) {
	md.H2("Email Addresses")
	md.PlainText("")

	if len(result.Emails) == 0 {
		md.PlainText("No email addresses found.")
		md.PlainText("")
		return
	}

	md.BulletList(result.Emails...)
	md.PlainText("")
}

// writeFailures writes per-page failure diagnostics.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, result *model.CrawlResult) {
	if len(result.Failures) == 0 {
		return
	}

	md.H2("Failed Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		rows = append(rows, []string{"`" + f.URL + "`", f.Reason})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}
