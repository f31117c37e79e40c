package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"darwin/internal/token"
)

// CheckTokenInvariants runs the stream invariants on tokens scanned from text:
// 1) the first token starts at 0 and each token starts where the previous ended
// 2) every token before the last is non-empty and not EndOfText
// 3) the stream ends with exactly one empty EndOfText at len(text)
func CheckTokenInvariants(text []byte, toks []token.Token) error {
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenText, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}

	var want uint32
	for i, tok := range toks {
		if tok.Range.Start != want {
			return fmt.Errorf("token %d %v: gap or overlap, expected start %d", i, tok, want)
		}
		if tok.Range.End < tok.Range.Start {
			return fmt.Errorf("token %d %v: inverted range", i, tok)
		}
		last := i == len(toks)-1
		if tok.Kind == token.EndOfText && !last {
			return fmt.Errorf("token %d: EndOfText before the end of the stream", i)
		}
		if !last && tok.Range.Empty() {
			return fmt.Errorf("token %d %v: empty range makes no progress", i, tok)
		}
		want = tok.Range.End
	}

	end := toks[len(toks)-1]
	if end.Kind != token.EndOfText {
		return fmt.Errorf("stream ends with %v, not EndOfText", end)
	}
	if !end.Range.Empty() || end.Range.Start != lenText {
		return fmt.Errorf("EndOfText %v does not sit at the end of text (%d)", end, lenText)
	}
	return nil
}

// SameKindNeighbours returns the index of the second token of the first
// adjacent pair that shares a maximal-munch kind, or 0 when there is none
// (a pair index is always >= 1). Punctuators, Error and numeric literals
// may legitimately repeat.
func SameKindNeighbours(toks []token.Token) int {
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Kind, toks[i].Kind
		if prev != cur {
			continue
		}
		switch cur {
		case token.Whitespace, token.Operator, token.Identifier, token.Comment:
			return i
		}
	}
	return 0
}
