package token_test

import (
	"testing"

	"darwin/internal/source"
	"darwin/internal/token"
)

func TestKindString_RoundTrip(t *testing.T) {
	for _, k := range token.Kinds() {
		name := k.String()
		got, ok := token.ParseKind(name)
		if !ok {
			t.Fatalf("ParseKind(%q) = !ok", name)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", name, got, k)
		}
	}
	if n := len(token.Kinds()); n != 19 {
		t.Fatalf("expected 19 kinds, got %d", n)
	}
}

func TestKindString_Order(t *testing.T) {
	// порядок объявлений фиксирован: он виден в JSON и в кэше
	if token.Error != 0 {
		t.Fatalf("Error must be the zero kind")
	}
	if token.EndOfText.String() != "EndOfText" {
		t.Fatalf("unexpected name %q", token.EndOfText.String())
	}
	if token.FloatingPointLiteral.String() != "FloatingPointLiteral" {
		t.Fatalf("unexpected name %q", token.FloatingPointLiteral.String())
	}
	if _, ok := token.ParseKind("Keyword"); ok {
		t.Fatalf("ParseKind accepted an unknown name")
	}
}

func TestIsPunctuator(t *testing.T) {
	punct := []token.Kind{
		token.Comma, token.Colon, token.Semicolon,
		token.OpenParen, token.CloseParen, token.OpenBrace, token.CloseBrace,
		token.OpenBracket, token.CloseBracket,
	}
	for _, k := range punct {
		if !k.IsPunctuator() {
			t.Fatalf("%v should be punctuator", k)
		}
	}
	non := []token.Kind{token.Operator, token.Identifier, token.EndOfText, token.Error}
	for _, k := range non {
		if k.IsPunctuator() {
			t.Fatalf("%v must NOT be punctuator", k)
		}
	}
}

func TestIsTriviaAndLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.Whitespace, token.LineTerminator, token.Comment} {
		if !k.IsTrivia() {
			t.Fatalf("%v should be trivia", k)
		}
	}
	if token.EndOfText.IsTrivia() {
		t.Fatalf("EndOfText must not be trivia")
	}
	for _, k := range []token.Kind{token.DecimalLiteral, token.HexadecimalLiteral, token.FloatingPointLiteral} {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if token.Identifier.IsLiteral() {
		t.Fatalf("Identifier must not be literal")
	}
}

func TestTokenEquality(t *testing.T) {
	a := token.Token{Kind: token.Operator, Range: token.Range{Start: 0, End: 2}}
	b := token.Token{Kind: token.Operator, Range: token.Range{Start: 0, End: 2}}
	c := token.Token{Kind: token.Operator, Range: token.Range{Start: 0, End: 1}}
	if a != b {
		t.Fatalf("structurally equal tokens compare unequal")
	}
	if a == c {
		t.Fatalf("tokens with different ranges compare equal")
	}
	if got := a.String(); got != "Operator[0,2)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestTokenText(t *testing.T) {
	src := []byte("a ++ b")
	tok := token.Token{Kind: token.Operator, Range: token.Range{Start: 2, End: 4}}
	if got := string(tok.Text(src)); got != "++" {
		t.Fatalf("Text() = %q, want %q", got, "++")
	}
	sp := tok.Range.Span(source.FileID(3))
	if sp.File != 3 || sp.Start != 2 || sp.End != 4 {
		t.Fatalf("Span() = %v", sp)
	}
	if tok.Range.Len() != 2 || tok.Range.Empty() {
		t.Fatalf("unexpected Len/Empty for %v", tok.Range)
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range token.Kinds() {
		if !k.Valid() {
			t.Fatalf("%v should be valid", k)
		}
	}
	bad := token.Kind(len(token.Kinds()))
	if bad.Valid() {
		t.Fatalf("Kind(%d) should be invalid", bad)
	}
	if bad.String() != "Kind(?)" {
		t.Fatalf("unexpected name %q", bad.String())
	}
}
