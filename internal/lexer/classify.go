package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ===== Классификаторы =====
// ASCII идёт по быстрому пути; остальное через таблицы unicode.

var (
	identStartTables = []*unicode.RangeTable{
		unicode.Lu, // uppercase letter
		unicode.Ll, // lowercase letter
		unicode.Lt, // titlecase letter
		unicode.Lm, // modifier letter
		unicode.Lo, // other letter
		unicode.Nl, // letter number
	}
	identContinueTables = []*unicode.RangeTable{
		unicode.Nd, // decimal digit
		unicode.Mn, // non-spacing mark
		unicode.Mc, // spacing combining mark
		unicode.Pc, // connector punctuation
	}
)

// IsWhitespace reports whether r is horizontal whitespace: space, tab,
// vertical tab, form feed, or a non-ASCII Unicode space. Line terminators
// are never whitespace.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f':
		return true
	}
	return r >= utf8.RuneSelf && unicode.IsSpace(r)
}

// IsLineTerminator reports whether r is '\r' or '\n'.
func IsLineTerminator(r rune) bool {
	return r == '\r' || r == '\n'
}

// IsOperatorSymbol reports whether r belongs to the operator alphabet
// ~ ! @ $ % ^ & * - + = \ | < > . ? /
func IsOperatorSymbol(r rune) bool {
	switch r {
	case '~', '!', '@', '$', '%', '^', '&', '*', '-', '+', '=', '\\', '|', '<', '>', '.', '?', '/':
		return true
	default:
		return false
	}
}

// IsIdentifierStart reports whether r may begin an identifier.
func IsIdentifierStart(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return unicode.In(r, identStartTables...)
}

// IsIdentifierContinue reports whether r may appear after the first
// character of an identifier.
func IsIdentifierContinue(r rune) bool {
	if r < utf8.RuneSelf {
		return IsIdentifierStart(r) || IsDecimalDigit(r)
	}
	return unicode.In(r, identStartTables...) || unicode.In(r, identContinueTables...)
}

// IsDecimalDigit reports whether r is an ASCII digit.
func IsDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsHexDigit reports whether r is an ASCII hexadecimal digit.
func IsHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}
