package token

import (
	"fmt"

	"darwin/internal/source"
)

// Range is a half-open byte interval [Start, End) over the scanned text.
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() uint32 {
	return r.End - r.Start
}

// Empty reports whether the range covers no bytes.
func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Span places the range inside a file of a FileSet.
func (r Range) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: r.Start, End: r.End}
}

// Token is a classified, range-delimited unit of source text.
// Tokens compare structurally with ==.
type Token struct {
	Kind  Kind
	Range Range
}

// String renders the token as Kind[start,end), which is what test failures print.
func (t Token) String() string {
	return t.Kind.String() + t.Range.String()
}

// Text returns the slice of src covered by the token.
// src must be the text the token was scanned from.
func (t Token) Text(src []byte) []byte {
	return src[t.Range.Start:t.Range.End]
}

// IsTrivia reports whether the token is whitespace, a line break or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }
