package lexer

import (
	"darwin/internal/token"
)

// scanNumber scans a numeric literal starting at a decimal digit.
//
// Supported forms: 123, 0x1F, 1.5, 1e3, 1E-3, 1.0e+10. A fraction or an
// exponent makes the literal FloatingPointLiteral. Each optional part is a
// lookahead: if it does not complete, the cursor goes back to where it
// began, so "1." leaves '.' and "1e" leaves 'e' for the next Scan call.
//
// "0x" with no hex digit after it is emitted as a two-character Error
// instead of being read as "0" followed by the identifier "x...".
//
// Nothing after the literal is checked: "123abc" is DecimalLiteral "123"
// followed by whatever Scan finds at "abc".
func scanNumber(c *Cursor) token.Token {
	leadingZero := c.Current() == '0'
	c.Advance()

	if leadingZero {
		if kind, ok := scanHexTail(c); ok {
			return c.Emit(kind)
		}
	}

	c.EatWhile(IsDecimalDigit)

	float := false
	if scanFraction(c) {
		float = true
	}
	if scanExponent(c) {
		float = true
	}

	if float {
		return c.Emit(token.FloatingPointLiteral)
	}
	return c.Emit(token.DecimalLiteral)
}

// scanHexTail runs right after a leading '0'. ok is false when there is no
// 'x'/'X' and nothing was consumed.
func scanHexTail(c *Cursor) (kind token.Kind, ok bool) {
	if !c.Eat(isHexMarker) {
		return 0, false
	}
	if !c.Eat(IsHexDigit) {
		// "0x" без цифр: отравленный префикс
		return token.Error, true
	}
	c.EatWhile(IsHexDigit)
	return token.HexadecimalLiteral, true
}

// scanFraction consumes '.' and a digit run, or nothing at all.
func scanFraction(c *Cursor) bool {
	m := c.Mark()
	if !c.Eat(isDot) {
		return false
	}
	if !c.Eat(IsDecimalDigit) {
		c.Reset(m)
		return false
	}
	c.EatWhile(IsDecimalDigit)
	return true
}

// scanExponent consumes 'e'/'E', an optional sign and a digit run, or
// nothing at all.
func scanExponent(c *Cursor) bool {
	m := c.Mark()
	if !c.Eat(isExponentMarker) {
		return false
	}
	c.Eat(isSign)
	if !c.Eat(IsDecimalDigit) {
		c.Reset(m)
		return false
	}
	c.EatWhile(IsDecimalDigit)
	return true
}

func isHexMarker(r rune) bool      { return r == 'x' || r == 'X' }
func isDot(r rune) bool            { return r == '.' }
func isExponentMarker(r rune) bool { return r == 'e' || r == 'E' }
func isSign(r rune) bool           { return r == '+' || r == '-' }
