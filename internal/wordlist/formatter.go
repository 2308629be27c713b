package wordlist

import (
	"strconv"

	"github.com/mkobayashi/webwords/internal/model"
)

// FormatLines renders a ranked wordlist as output lines, one word per line.
// When showCounts is true each line is "word count", otherwise just "word".
// No aggregation logic lives here; the input order is preserved as-is.
func FormatLines(ranked []model.RankedWord, showCounts bool) []string {
	lines := make([]string, 0, len(ranked))
	for _, rw := range ranked {
		if showCounts {
			lines = append(lines, rw.Word+" "+strconv.Itoa(rw.Count))
		} else {
			lines = append(lines, rw.Word)
		}
	}
	return lines
}
