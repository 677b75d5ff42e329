package printer

import (
	"fmt"
	"strings"
)

// CEscape escapes s for embedding inside a C string literal.
// Non-printable bytes are written as three-digit octal escapes so that a
// following digit can never extend the escape sequence.
func CEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '?':
			// avoid trigraphs
			b.WriteString(`\?`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}
