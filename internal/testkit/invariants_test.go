package testkit

import (
	"testing"

	"darwin/internal/token"
)

func tok(kind token.Kind, start, end uint32) token.Token {
	return token.Token{Kind: kind, Range: token.Range{Start: start, End: end}}
}

func TestSameKindNeighbours(t *testing.T) {
	tests := []struct {
		name string
		toks []token.Token
		want int
	}{
		{"empty", nil, 0},
		{"only_eof", []token.Token{tok(token.EndOfText, 0, 0)}, 0},
		{"alternating", []token.Token{
			tok(token.Identifier, 0, 1),
			tok(token.Whitespace, 1, 2),
			tok(token.Identifier, 2, 3),
			tok(token.EndOfText, 3, 3),
		}, 0},
		{"repeating_punctuators_allowed", []token.Token{
			tok(token.OpenParen, 0, 1),
			tok(token.OpenParen, 1, 2),
			tok(token.Error, 2, 3),
			tok(token.Error, 3, 4),
			tok(token.EndOfText, 4, 4),
		}, 0},
		{"split_operator", []token.Token{
			tok(token.Operator, 0, 1),
			tok(token.Operator, 1, 2),
			tok(token.EndOfText, 2, 2),
		}, 1},
		{"split_identifier_later", []token.Token{
			tok(token.Whitespace, 0, 1),
			tok(token.Identifier, 1, 2),
			tok(token.Identifier, 2, 3),
			tok(token.EndOfText, 3, 3),
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameKindNeighbours(tt.toks); got != tt.want {
				t.Fatalf("SameKindNeighbours = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckTokenInvariants(t *testing.T) {
	text := []byte("ab")
	good := []token.Token{tok(token.Identifier, 0, 2), tok(token.EndOfText, 2, 2)}
	if err := CheckTokenInvariants(text, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := map[string][]token.Token{
		"empty":       nil,
		"gap":         {tok(token.Identifier, 0, 1), tok(token.EndOfText, 2, 2)},
		"no_eof":      {tok(token.Identifier, 0, 2)},
		"early_eof":   {tok(token.EndOfText, 0, 0), tok(token.Identifier, 0, 2), tok(token.EndOfText, 2, 2)},
		"empty_token": {tok(token.Identifier, 0, 0), tok(token.Identifier, 0, 2), tok(token.EndOfText, 2, 2)},
	}
	for name, toks := range bad {
		if err := CheckTokenInvariants(text, toks); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
