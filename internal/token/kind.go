package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Error marks lexically invalid input: an unrecognised character or a bare "0x" prefix.
	Error Kind = iota
	// Whitespace is a run of spaces, tabs, vertical tabs, form feeds or Unicode spaces.
	Whitespace
	// LineTerminator is "\n", "\r" or "\r\n".
	LineTerminator
	// Comment runs from '#' up to the next line terminator.
	Comment
	// EndOfText is the empty token at the end of input.
	EndOfText

	// Comma represents ','.
	Comma // ,
	// Colon represents ':'.
	Colon // :
	// Semicolon represents ';'.
	Semicolon // ;
	// OpenParen represents '('.
	OpenParen // (
	// CloseParen represents ')'.
	CloseParen // )
	// OpenBrace represents '{'.
	OpenBrace // {
	// CloseBrace represents '}'.
	CloseBrace // }
	// OpenBracket represents '['.
	OpenBracket // [
	// CloseBracket represents ']'.
	CloseBracket // ]

	// Operator is a maximal run of operator symbols (~ ! @ $ % ^ & * - + = \ | < > . ? /).
	Operator
	// Identifier is a letter or '_' followed by identifier characters.
	Identifier

	// DecimalLiteral represents an integer such as 123.
	DecimalLiteral
	// HexadecimalLiteral represents an integer such as 0xFF.
	HexadecimalLiteral
	// FloatingPointLiteral represents a number with a fraction and/or exponent.
	FloatingPointLiteral

	kindCount
)

var kindNames = [...]string{
	Error:                "Error",
	Whitespace:           "Whitespace",
	LineTerminator:       "LineTerminator",
	Comment:              "Comment",
	EndOfText:            "EndOfText",
	Comma:                "Comma",
	Colon:                "Colon",
	Semicolon:            "Semicolon",
	OpenParen:            "OpenParen",
	CloseParen:           "CloseParen",
	OpenBrace:            "OpenBrace",
	CloseBrace:           "CloseBrace",
	OpenBracket:          "OpenBracket",
	CloseBracket:         "CloseBracket",
	Operator:             "Operator",
	Identifier:           "Identifier",
	DecimalLiteral:       "DecimalLiteral",
	HexadecimalLiteral:   "HexadecimalLiteral",
	FloatingPointLiteral: "FloatingPointLiteral",
}

// String returns the identifier name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Error; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k := Error; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return Error, false
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k < kindCount }

// IsEOF reports whether the kind ends the token stream.
func (k Kind) IsEOF() bool { return k == EndOfText }

// IsTrivia reports whether the kind carries no syntax: whitespace, line breaks and comments.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineTerminator, Comment:
		return true
	default:
		return false
	}
}

// IsPunctuator reports whether the kind is one of the single-character punctuators.
func (k Kind) IsPunctuator() bool {
	return k >= Comma && k <= CloseBracket
}

// IsLiteral reports whether the kind is a numeric literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case DecimalLiteral, HexadecimalLiteral, FloatingPointLiteral:
		return true
	default:
		return false
	}
}
