// Package token defines lexical token kinds and ranges for the Darwin language.
// Invariants:
//   - A Token never holds source bytes; Range is the only link back to the text.
//   - Range is half-open in byte offsets: [Start, End).
//   - Tokens produced for one text tile it without gaps: the End of one token is
//     the Start of the next, and the stream ends with a single empty EndOfText.
//   - Operators are not split into per-symbol kinds; a maximal run of operator
//     symbols is one Operator token and its meaning is decided later.
package token
