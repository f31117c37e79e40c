package lexer

import (
	"darwin/internal/token"
)

// scanOperator consumes a maximal run of operator symbols. "++", "->" and
// "~!@" are each one Operator; splitting them is left to the parser.
func scanOperator(c *Cursor) token.Token {
	c.EatWhile(IsOperatorSymbol)
	return c.Emit(token.Operator)
}

// scanPunctuator emits the single character under the cursor as kind.
func scanPunctuator(c *Cursor, kind token.Kind) token.Token {
	c.Advance()
	return c.Emit(kind)
}
