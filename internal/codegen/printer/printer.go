// Package printer is the text sink used by the C generators.
//
// Text is printed with $name$ placeholders that are substituted from a
// variable map; "$$" prints a literal dollar sign. Indentation set with
// Indent/Outdent is applied to the start of every non-empty line.
package printer

import (
	"errors"
	"fmt"
	"strings"
)

const delimiter = '$'

// Printer accumulates generated text. The zero value is not usable; call New.
type Printer struct {
	sb           strings.Builder
	indentString string
	indentLevel  int
	linePrefix   string
	atLineStart  bool
	err          error
}

// New creates a Printer that indents with indentString per level.
func New(indentString string) *Printer {
	return &Printer{
		indentString: indentString,
		atLineStart:  true,
	}
}

// Indent increases the indentation level.
func (p *Printer) Indent() {
	p.indentLevel++
	p.linePrefix = strings.Repeat(p.indentString, p.indentLevel)
}

// Outdent decreases the indentation level. Outdenting past zero is recorded as an error.
func (p *Printer) Outdent() {
	if p.indentLevel == 0 {
		p.setErr(errors.New("outdent below zero"))
		return
	}
	p.indentLevel--
	p.linePrefix = strings.Repeat(p.indentString, p.indentLevel)
}

// Print writes text with every $name$ replaced by vars[name].
// A placeholder missing from vars, or an unterminated one, is recorded in Err
// and printed as nothing.
func (p *Printer) Print(vars map[string]string, text string) {
	for len(text) > 0 {
		i := strings.IndexByte(text, delimiter)
		if i < 0 {
			p.write(text)
			return
		}
		p.write(text[:i])
		text = text[i+1:]

		j := strings.IndexByte(text, delimiter)
		if j < 0 {
			p.setErr(fmt.Errorf("unterminated placeholder in %q", text))
			return
		}
		name := text[:j]
		text = text[j+1:]

		if name == "" {
			p.write(string(delimiter))
			continue
		}
		val, ok := vars[name]
		if !ok {
			p.setErr(fmt.Errorf("undefined placeholder $%s$", name))
			continue
		}
		p.write(val)
	}
}

func (p *Printer) write(s string) {
	for len(s) > 0 {
		nl := strings.IndexByte(s, '\n')
		line := s
		if nl >= 0 {
			line = s[:nl]
		}
		if line != "" {
			if p.atLineStart {
				p.sb.WriteString(p.linePrefix)
			}
			p.sb.WriteString(line)
			p.atLineStart = false
		}
		if nl < 0 {
			return
		}
		p.sb.WriteByte('\n')
		p.atLineStart = true
		s = s[nl+1:]
	}
}

func (p *Printer) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first placeholder or indentation error, if any.
func (p *Printer) Err() error { return p.err }

// String returns the text printed so far.
func (p *Printer) String() string { return p.sb.String() }

// Reset clears printed text, indentation and any recorded error.
func (p *Printer) Reset() {
	p.sb.Reset()
	p.indentLevel = 0
	p.linePrefix = ""
	p.atLineStart = true
	p.err = nil
}
