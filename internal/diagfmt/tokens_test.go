package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darwin/internal/lexer"
	"darwin/internal/source"
	"darwin/internal/token"
)

func loadTokens(t *testing.T, src string) (*source.FileSet, *source.File, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.dw", []byte(src)))
	return fs, file, lexer.Tokens(file.Content)
}

func TestFormatTokensPretty(t *testing.T) {
	fs, file, toks := loadTokens(t, "x = 1\n# a rather long comment")

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, file, fs, toks, TokenOpts{MaxTextWidth: 8}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(toks))

	assert.Equal(t, `   1: Identifier           "x"            1:1-1:2`, lines[0])
	assert.Contains(t, lines[4], `"1"`)
	assert.Contains(t, lines[5], `"\n"`)
	assert.Contains(t, lines[6], `"# a r..."`)
	assert.Contains(t, lines[7], "EndOfText")
	assert.Contains(t, lines[7], "2:24-2:24")

	buf.Reset()
	require.NoError(t, FormatTokensPretty(&buf, file, fs, toks, TokenOpts{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestTokenTextTruncatesByWidth(t *testing.T) {
	_, file, toks := loadTokens(t, "名前名前名前")
	require.Len(t, toks, 2)
	// 6 символов по 2 колонки
	assert.Equal(t, "名...", tokenText(file, toks[0], 5))
	assert.Equal(t, "名前名前名前", tokenText(file, toks[0], 0))
	assert.Equal(t, "名", tokenText(file, toks[0], 3))
}

func TestFormatTokensJSON(t *testing.T) {
	fs, file, toks := loadTokens(t, "a\n0x1F")

	var buf bytes.Buffer
	out := TokensOutput{Files: []FileTokensJSON{FileTokens(file, fs, toks, TokenOpts{})}}
	require.NoError(t, FormatTokensJSON(&buf, out))

	var got TokensOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Files, 1)
	assert.Equal(t, "t.dw", got.Files[0].File)
	assert.Equal(t, []TokenJSON{
		{Kind: "Identifier", Text: "a", Start: 0, End: 1, Line: 1, Col: 1},
		{Kind: "LineTerminator", Text: "\n", Start: 1, End: 2, Line: 1, Col: 2},
		{Kind: "HexadecimalLiteral", Text: "0x1F", Start: 2, End: 6, Line: 2, Col: 1},
		{Kind: "EndOfText", Text: "", Start: 6, End: 6, Line: 2, Col: 5},
	}, got.Files[0].Tokens)

	buf.Reset()
	require.NoError(t, FormatTokensJSON(&buf, TokensOutput{}))
	assert.JSONEq(t, `{"files":[]}`, buf.String())
}

func TestFormatStats(t *testing.T) {
	var s TokenStats
	s.CountTokens(lexer.Tokens([]byte("a b")))
	s.CountTokens(lexer.Tokens([]byte("1")))

	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Count(token.Identifier))
	assert.Equal(t, 1, s.Count(token.DecimalLiteral))
	assert.Equal(t, uint32(4), s.Bytes)

	var buf bytes.Buffer
	require.NoError(t, FormatStats(&buf, &s, TokenOpts{}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Whitespace"))
	assert.Contains(t, lines[1], "EndOfText")
	assert.Contains(t, lines[4], "total")
	assert.Contains(t, lines[4], "(2 files, 4 bytes)")

	buf.Reset()
	require.NoError(t, FormatStatsJSON(&buf, &s))
	assert.JSONEq(t, `{"files":2,"total":6,"bytes":4,"kinds":{"Whitespace":1,"EndOfText":2,"Identifier":2,"DecimalLiteral":1}}`, buf.String())
}
