package lexer

import (
	"darwin/internal/token"
)

// scanIdentifier consumes an identifier-start character and then the
// longest run of identifier-continue characters. There are no keywords at
// this level.
func scanIdentifier(c *Cursor) token.Token {
	c.Advance()
	c.EatWhile(IsIdentifierContinue)
	return c.Emit(token.Identifier)
}
