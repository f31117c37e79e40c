package lexer

import (
	"unicode/utf8"

	"darwin/internal/token"
)

// Scan classifies and delimits the token that starts at offset in text.
//
// The result always starts at offset (clamped to len(text)). At the end of
// text it is an empty EndOfText token; anywhere else it is non-empty, so a
// caller that keeps passing the previous token's Range.End walks the whole
// text without gaps. Scan keeps no state between calls and may run
// concurrently on the same text.
func Scan(text []byte, offset uint32) token.Token {
	c := NewCursor(text, offset)
	if c.AtEnd() {
		return c.Emit(token.EndOfText)
	}

	ch := c.Current()
	switch ch {
	case ' ', '\t', '\v', '\f':
		return scanWhitespace(&c)

	case '\n', '\r':
		return scanLineTerminator(&c)

	case '#':
		return scanComment(&c)

	case ',':
		return scanPunctuator(&c, token.Comma)
	case ':':
		return scanPunctuator(&c, token.Colon)
	case ';':
		return scanPunctuator(&c, token.Semicolon)
	case '(':
		return scanPunctuator(&c, token.OpenParen)
	case ')':
		return scanPunctuator(&c, token.CloseParen)
	case '{':
		return scanPunctuator(&c, token.OpenBrace)
	case '}':
		return scanPunctuator(&c, token.CloseBrace)
	case '[':
		return scanPunctuator(&c, token.OpenBracket)
	case ']':
		return scanPunctuator(&c, token.CloseBracket)

	case '~', '!', '@', '$', '%', '^', '&', '*', '-', '+', '=', '\\', '|', '<', '>', '.', '?', '/':
		return scanOperator(&c)

	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return scanNumber(&c)
	}

	switch {
	case IsIdentifierStart(ch):
		return scanIdentifier(&c)
	case ch >= utf8.RuneSelf && IsWhitespace(ch):
		return scanWhitespace(&c)
	default:
		// неизвестный символ: ровно один символ, чтобы вызывающий шёл дальше
		c.Advance()
		return c.Emit(token.Error)
	}
}
