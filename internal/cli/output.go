package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// styles colors terminal output. Colors are off unless w is a terminal.
type styles struct {
	label, value, ins, del, warn *color.Color
}

func newStyles(w io.Writer, noColor bool) styles {
	s := styles{
		label: color.New(color.FgCyan),
		value: color.New(color.Bold),
		ins:   color.New(color.FgGreen),
		del:   color.New(color.FgRed, color.CrossedOut),
		warn:  color.New(color.FgYellow),
	}
	if noColor || !isTTY(w) {
		for _, c := range []*color.Color{s.label, s.value, s.ins, s.del, s.warn} {
			c.DisableColor()
		}
	} else {
		for _, c := range []*color.Color{s.label, s.value, s.ins, s.del, s.warn} {
			c.EnableColor()
		}
	}
	return s
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// field prints "label: value".
func (s styles) field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", s.label.Sprint(label+":"), s.value.Sprint(value))
}

// renderDiff marks what simplification removed as [-text-] and what it
// added as {+text+}. On a terminal the markers are replaced by color.
func renderDiff(before, after string, s styles) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	colored := s.ins.Sprint("x") != "x"
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			if colored {
				b.WriteString(s.ins.Sprint(d.Text))
			} else {
				b.WriteString("{+" + d.Text + "+}")
			}
		case diffpatch.DiffDelete:
			if colored {
				b.WriteString(s.del.Sprint(d.Text))
			} else {
				b.WriteString("[-" + d.Text + "-]")
			}
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func renderTable(header []string, rows [][]string, align []int) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	if align != nil {
		table.SetColumnAlignment(align)
	}
	table.AppendBulk(rows)
	table.Render()

	return buf.String()
}
