package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"darwin/internal/token"
)

// Cursor is a position inside text that lives for a single Scan call.
// It borrows text and never copies it; only pos moves.
type Cursor struct {
	text  []byte
	start uint32
	pos   uint32
	limit uint32 // len(text)
}

// NewCursor places a cursor at offset. An offset past the end of text is
// clamped to the end.
func NewCursor(text []byte, offset uint32) Cursor {
	limit, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("len text overflow: %w", err))
	}
	if offset > limit {
		offset = limit
	}
	return Cursor{
		text:  text,
		start: offset,
		pos:   offset,
		limit: limit,
	}
}

// AtEnd проверяет, достигнут ли конец текста
func (c *Cursor) AtEnd() bool {
	return c.pos >= c.limit
}

// Current returns the character at the cursor, or 0 at end of text.
// Callers check AtEnd first when 0 would be ambiguous.
func (c *Cursor) Current() rune {
	r, _ := c.decode()
	return r
}

// decode returns the rune at pos and its width in bytes. Invalid UTF-8
// decodes as a one-byte utf8.RuneError.
func (c *Cursor) decode() (rune, uint32) {
	if c.AtEnd() {
		return 0, 0
	}
	b := c.text[c.pos]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(c.text[c.pos:c.limit])
	return r, uint32(sz) // sz is 1..4
}

// Advance moves past the current character and reports whether the cursor
// still points inside the text.
func (c *Cursor) Advance() bool {
	_, sz := c.decode()
	c.pos += sz
	return !c.AtEnd()
}

// Eat consumes the current character if pred accepts it.
func (c *Cursor) Eat(pred func(rune) bool) bool {
	if c.AtEnd() || !pred(c.Current()) {
		return false
	}
	c.Advance()
	return true
}

// EatWhile consumes the longest run of characters accepted by pred.
func (c *Cursor) EatWhile(pred func(rune) bool) {
	for c.Eat(pred) {
	}
}

// Mark это сохранённая позиция для отката
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.pos)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.pos = uint32(m)
}

// Start returns the offset the scan began at.
func (c *Cursor) Start() uint32 { return c.start }

// Pos returns the current offset.
func (c *Cursor) Pos() uint32 { return c.pos }

// Emit turns the consumed span [start, pos) into a token.
func (c *Cursor) Emit(kind token.Kind) token.Token {
	return token.Token{
		Kind:  kind,
		Range: token.Range{Start: c.start, End: c.pos},
	}
}
