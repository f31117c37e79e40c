package lexer

import (
	"fmt"
	"iter"
	"slices"

	"darwin/internal/diag"
	"darwin/internal/source"
	"darwin/internal/token"
)

// All yields the complete token stream of text: every token from offset 0,
// each starting where the previous one ended, finishing with exactly one
// EndOfText.
func All(text []byte) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		var off uint32
		for {
			tok := Scan(text, off)
			if !yield(tok) || tok.Kind.IsEOF() {
				return
			}
			off = tok.Range.End
		}
	}
}

// Tokens collects All(text).
func Tokens(text []byte) []token.Token {
	return slices.Collect(All(text))
}

// Lexer walks a source file token by token and reports Error tokens as
// diagnostics. The scanning itself is Scan; Lexer only remembers the offset.
type Lexer struct {
	file *source.File
	opts Options
	off  uint32
	look *token.Token // 1 элементный буфер для Peek
}

// New returns a pull lexer over file.Content. The file must not change
// while the lexer or its tokens are in use.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts,
	}
}

// Next возвращает следующий токен. После EndOfText всегда возвращает EndOfText.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		tok := Scan(lx.file.Content, lx.off)
		lx.off = tok.Range.End
		if tok.Kind == token.Error {
			reportError(lx.file, lx.opts.Reporter, tok)
		}
		if lx.opts.SkipTrivia && tok.IsTrivia() {
			continue
		}
		return tok
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Offset returns where the next Scan will start.
func (lx *Lexer) Offset() uint32 {
	return lx.off
}

// ReportErrors sends one diagnostic per Error token in toks, exactly as
// Next does while scanning. Used when toks come from a cache.
func ReportErrors(file *source.File, toks []token.Token, r diag.Reporter) {
	for _, tok := range toks {
		if tok.Kind == token.Error {
			reportError(file, r, tok)
		}
	}
}

func reportError(file *source.File, r diag.Reporter, tok token.Token) {
	if r == nil {
		return
	}
	sp := tok.Range.Span(file.ID)
	text := tok.Text(file.Content)
	if IsPoisonedHexPrefix(text) {
		diag.ReportError(r, diag.LexBadNumber, sp,
			fmt.Sprintf("expected hexadecimal digit after %q", text)).Emit()
		return
	}
	diag.ReportError(r, diag.LexUnknownChar, sp,
		fmt.Sprintf("unexpected character %q", text)).Emit()
}

// IsPoisonedHexPrefix reports whether the text of an Error token is a bare
// "0x" or "0X".
func IsPoisonedHexPrefix(text []byte) bool {
	return len(text) == 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}
