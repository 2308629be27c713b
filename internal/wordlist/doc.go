// Package wordlist turns extracted page text into a ranked wordlist.
//
// # Components
//
//   - Tokenize: splits raw text into normalized candidate words under
//     length and digit filters
//   - Aggregator: accumulates word frequencies and the email set across
//     a whole crawl
//   - FormatLines: renders the ranked result as output lines
//
// # Determinism
//
// The tokenizer emits words in document order and the aggregator records
// first-seen order, so ranking can break count ties stably. Two crawls over
// identical content visited in the same order produce byte-identical output.
package wordlist
