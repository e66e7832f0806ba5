package cmd

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// colorOutput reports whether w is a terminal that gets colored tables.
func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newTable returns a table writing to w, styled for terminals and plain
// for pipes.
func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if title != "" {
		t.SetTitle(title)
	}
	if colorOutput(w) {
		t.SetStyle(table.StyleColoredBright)
		t.Style().Title.Colors = text.Colors{text.Bold}
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}
