package lexer

import (
	"darwin/internal/token"
)

// scanWhitespace consumes a maximal run of whitespace.
func scanWhitespace(c *Cursor) token.Token {
	c.EatWhile(IsWhitespace)
	return c.Emit(token.Whitespace)
}

// scanLineTerminator consumes one line break: "\n", "\r" or "\r\n".
func scanLineTerminator(c *Cursor) token.Token {
	first := c.Current()
	c.Advance()
	if first == '\r' {
		c.Eat(isLineFeed)
	}
	return c.Emit(token.LineTerminator)
}

// scanComment consumes '#' and everything up to, but not including, the
// next line terminator.
func scanComment(c *Cursor) token.Token {
	c.Advance() // '#'
	c.EatWhile(isCommentBody)
	return c.Emit(token.Comment)
}

func isLineFeed(r rune) bool { return r == '\n' }

func isCommentBody(r rune) bool { return !IsLineTerminator(r) }
