package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"darwin/internal/source"
	"darwin/internal/token"
)

// TokenJSON is one token in JSON output.
type TokenJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// FileTokensJSON is the token listing of one file.
type FileTokensJSON struct {
	File        string           `json:"file"`
	Cached      bool             `json:"cached,omitempty"`
	Tokens      []TokenJSON      `json:"tokens"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
}

// TokensOutput is the root of `tokenize --format json`.
type TokensOutput struct {
	Files []FileTokensJSON `json:"files"`
}

// tokenText returns the token text, shortened to maxWidth terminal columns.
func tokenText(file *source.File, tok token.Token, maxWidth int) string {
	text := string(tok.Text(file.Content))
	if maxWidth > 0 && runewidth.StringWidth(text) > maxWidth {
		if maxWidth <= 3 {
			return runewidth.Truncate(text, maxWidth, "")
		}
		return runewidth.Truncate(text, maxWidth, "...")
	}
	return text
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
//
//	3: Identifier           "abc"        1:5-1:8
func FormatTokensPretty(w io.Writer, file *source.File, fs *source.FileSet, tokens []token.Token, opts TokenOpts) error {
	p := palette{on: opts.Color}
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Range.Span(file.ID))
		kind := p.kind(tok.Kind, fmt.Sprintf("%-20s", tok.Kind))
		text := fmt.Sprintf("%-14s", strconv.Quote(tokenText(file, tok, opts.MaxTextWidth)))

		if _, err := fmt.Fprintf(w, "%4d: %s %s %d:%d-%d:%d\n",
			i+1, kind, text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensJSON converts tokens of file to their JSON form.
func BuildTokensJSON(file *source.File, fs *source.FileSet, tokens []token.Token, opts TokenOpts) []TokenJSON {
	out := make([]TokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Range.Span(file.ID))
		out = append(out, TokenJSON{
			Kind:  tok.Kind.String(),
			Text:  tokenText(file, tok, opts.MaxTextWidth),
			Start: tok.Range.Start,
			End:   tok.Range.End,
			Line:  pos.Line,
			Col:   pos.Col,
		})
	}
	return out
}

// FileTokens assembles the JSON listing of one file.
func FileTokens(file *source.File, fs *source.FileSet, tokens []token.Token, opts TokenOpts) FileTokensJSON {
	return FileTokensJSON{
		File:   formatPath(file, fs, opts.PathMode),
		Tokens: BuildTokensJSON(file, fs, tokens, opts),
	}
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, out TokensOutput) error {
	if out.Files == nil {
		out.Files = []FileTokensJSON{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
