package lexer

import (
	"darwin/internal/diag"
)

type Options struct {
	// Reporter получает по диагностике на каждый Error токен; может быть nil.
	Reporter diag.Reporter
	// SkipTrivia hides Whitespace, LineTerminator and Comment tokens from Next.
	SkipTrivia bool
}
