// Package printer is a line oriented source writer shared by the text
// generators.
package printer

import (
	"fmt"
	"strings"
)

type Printer struct {
	buf    strings.Builder
	unit   string
	indent int
}

// New returns a Printer that indents nested blocks with unit.
func New(unit string) *Printer {
	return &Printer{unit: unit}
}

// Line writes one indented line. An empty line is written without indentation.
func (p *Printer) Line(s string) {
	if s == "" {
		p.buf.WriteByte('\n')
		return
	}
	p.buf.WriteString(strings.Repeat(p.unit, p.indent))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *Printer) Linef(format string, args ...any) {
	p.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line unless the output is empty or already ends with one.
func (p *Printer) Blank() {
	s := p.buf.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	p.buf.WriteByte('\n')
}

// Indent runs fn one level deeper.
func (p *Printer) Indent(fn func()) {
	p.indent++
	fn()
	p.indent--
}

// Block writes open, runs fn indented and writes close on its own line.
func (p *Printer) Block(open, close string, fn func()) {
	p.Line(open)
	p.Indent(fn)
	p.Line(close)
}

// Comment writes text as a comment, one prefixed line per input line.
func (p *Printer) Comment(prefix, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		p.Line(strings.TrimRight(prefix+" "+line, " "))
	}
}

func (p *Printer) String() string {
	return p.buf.String()
}

func (p *Printer) Bytes() []byte {
	return []byte(p.buf.String())
}
