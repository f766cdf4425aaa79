package writer

import (
	"bytes"
	"strings"
)

var escaper = strings.NewReplacer(`\`, `\\`, `"""`, `\"\"\"`)

// docstringLiteral renders text as a triple-quoted string literal. Continuation
// lines are indented to the body, joined with newline, and a multi-line literal
// closes on its own line.
func docstringLiteral(text, indent, newline string) string {
	text = escaper.Replace(strings.TrimSpace(text))
	if strings.HasSuffix(text, `"`) && !escapedAt(text, len(text)-1) {
		text = text[:len(text)-1] + `\"`
	}

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return `"""` + text + `"""`
	}

	var b strings.Builder
	b.WriteString(`"""`)
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if i > 0 {
			b.WriteString(newline)
			if line != "" {
				b.WriteString(indent)
			}
		}
		b.WriteString(line)
	}
	b.WriteString(newline)
	b.WriteString(indent)
	b.WriteString(`"""`)
	return b.String()
}

// escapedAt reports whether the byte at i is preceded by an odd number of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// lineEnding returns the line terminator used by src: CRLF when its first line
// ends with one, LF otherwise.
func lineEnding(src []byte) string {
	if i := bytes.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
