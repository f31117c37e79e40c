package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"darwin/internal/diag"
	"darwin/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид, по одной на строку:
//
//	<path>:<line>:<col>: <SEV> [<CODE>] <message>
//
// With ShowLine the source line follows with a ^~~~ underline under the
// primary span. Items are printed in bag order; call bag.Sort first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := palette{on: opts.Color}
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	loc := location(d.Primary, fs, opts.PathMode)
	if _, err := fmt.Fprintf(w, "%s: %s %s %s\n",
		p.path(loc), p.severity(d.Severity), p.code("["+d.Code.ID()+"]"), d.Message); err != nil {
		return err
	}
	if opts.ShowLine && hasFile(fs, d.Primary) {
		if err := underline(w, d.Primary, fs, p); err != nil {
			return err
		}
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s: note: %s\n", location(n.Span, fs, opts.PathMode), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasFile(fs *source.FileSet, sp source.Span) bool {
	return fs != nil && int(sp.File) < fs.Len()
}

// location renders "path:line:col", or just "path" for an empty span at 0.
func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	if !hasFile(fs, sp) {
		return "<unknown>"
	}
	f := fs.Get(sp.File)
	path := formatPath(f, fs, mode)
	if sp.Empty() && sp.Start == 0 && len(f.Content) > 0 {
		return path
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// underline печатает строку исходника и ^~~~ под span. Колонки считаются
// по ширине символов в терминале, не по байтам.
func underline(w io.Writer, sp source.Span, fs *source.FileSet, p palette) error {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	line = strings.ReplaceAll(line, "\t", " ")

	lineLen := uint32(len(line))
	from := min(start.Col-1, lineLen)
	to := lineLen
	if end.Line == start.Line {
		to = min(end.Col-1, lineLen)
	}

	pad := runewidth.StringWidth(line[:from])
	width := max(1, runewidth.StringWidth(line[from:to]))
	marker := "^" + strings.Repeat("~", width-1)

	_, err := fmt.Fprintf(w, "  %s\n  %s%s\n", line, strings.Repeat(" ", pad), p.caret(marker))
	return err
}
