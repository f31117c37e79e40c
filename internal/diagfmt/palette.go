package diagfmt

import (
	"github.com/fatih/color"

	"darwin/internal/diag"
	"darwin/internal/token"
)

// palette hands out colour printers that respect one on/off switch,
// independent of color.NoColor.
type palette struct {
	on bool
}

func (p palette) paint(s string, attrs ...color.Attribute) string {
	if !p.on || s == "" {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.paint(sev.String(), color.FgRed, color.Bold)
	case diag.SevWarning:
		return p.paint(sev.String(), color.FgYellow, color.Bold)
	default:
		return p.paint(sev.String(), color.FgCyan, color.Bold)
	}
}

func (p palette) kind(k token.Kind, s string) string {
	switch {
	case k == token.Error:
		return p.paint(s, color.FgRed, color.Bold)
	case k.IsTrivia():
		return p.paint(s, color.Faint)
	case k.IsLiteral():
		return p.paint(s, color.FgMagenta)
	case k == token.Identifier:
		return p.paint(s, color.FgCyan)
	case k == token.Operator || k.IsPunctuator():
		return p.paint(s, color.FgYellow)
	case k.IsEOF():
		return p.paint(s, color.FgGreen)
	default:
		return s
	}
}

func (p palette) path(s string) string  { return p.paint(s, color.Bold) }
func (p palette) code(s string) string  { return p.paint(s, color.FgHiBlack) }
func (p palette) caret(s string) string { return p.paint(s, color.FgGreen, color.Bold) }
