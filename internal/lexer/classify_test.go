package lexer

import "testing"

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name string
		pred func(rune) bool
		yes  []rune
		no   []rune
	}{
		{
			name: "IsWhitespace",
			pred: IsWhitespace,
			yes:  []rune{' ', '\t', '\v', '\f', '\u00a0', '\u2003', '\u3000', '\u2028'},
			no:   []rune{'\n', '\r', 'a', 0, '\u200b'},
		},
		{
			name: "IsLineTerminator",
			pred: IsLineTerminator,
			yes:  []rune{'\n', '\r'},
			no:   []rune{' ', '\u2028', '\u0085', 0},
		},
		{
			name: "IsOperatorSymbol",
			pred: IsOperatorSymbol,
			yes:  []rune("~!@$%^&*-+=\\|<>.?/"),
			no:   []rune(",:;(){}[]#_a0\"'`"),
		},
		{
			name: "IsIdentifierStart",
			pred: IsIdentifierStart,
			yes:  []rune{'_', 'a', 'Z', 'é', 'Ж', 'ǅ', 'ʰ', '中', 'Ⅻ'},
			no:   []rune{'0', '\u0301', '\u203f', '-', ' ', '\u0660', 0},
		},
		{
			name: "IsIdentifierContinue",
			pred: IsIdentifierContinue,
			yes:  []rune{'_', 'a', '9', '\u0301', '\u0903', '\u203f', '\u0660', 'Ⅻ'},
			no:   []rune{'-', '.', ' ', '$', 0},
		},
		{
			name: "IsDecimalDigit",
			pred: IsDecimalDigit,
			yes:  []rune("0123456789"),
			no:   []rune{'a', '/', ':', '\u0660', '\uff10'},
		},
		{
			name: "IsHexDigit",
			pred: IsHexDigit,
			yes:  []rune("0123456789abcdefABCDEF"),
			no:   []rune("gGxX \u0660"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range tt.yes {
				if !tt.pred(r) {
					t.Errorf("%s(%U %q) = false, want true", tt.name, r, r)
				}
			}
			for _, r := range tt.no {
				if tt.pred(r) {
					t.Errorf("%s(%U %q) = true, want false", tt.name, r, r)
				}
			}
		})
	}
}

// Every identifier-start character also continues an identifier.
func TestIdentifierStartImpliesContinue(t *testing.T) {
	for r := rune(0); r < 0x3000; r++ {
		if IsIdentifierStart(r) && !IsIdentifierContinue(r) {
			t.Fatalf("%U starts but does not continue an identifier", r)
		}
		if IsWhitespace(r) && IsLineTerminator(r) {
			t.Fatalf("%U is both whitespace and line terminator", r)
		}
	}
}
