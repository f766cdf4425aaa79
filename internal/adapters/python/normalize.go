package python

import (
	"strings"

	"go.trai.ch/docullim/internal/core/domain"
)

// Normalize returns the text of a definition as sent to the model: the bytes
// src[start:end] with the docstring statement located by a removed, CRLF line
// endings converted, trailing whitespace and trailing blank lines dropped and
// the common indentation removed. start must be the offset of the def or class
// keyword; the indentation preceding it on its line is included so that nested
// definitions dedent consistently.
//
// A body that shares the header line is moved onto its own line, so
// "def f(): return 1" normalizes like the form the writer leaves behind.
func Normalize(src []byte, start, end int, a domain.DocAnchor) string {
	lineStart := start
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	if strings.TrimLeft(string(src[lineStart:start]), " \t") != "" {
		lineStart = start
	}

	hasDoc := a.HasDocstring() && a.DocStart >= start && a.DocEnd <= end

	var text string
	switch {
	case a.Inline && a.HeaderEnd > lineStart && a.HeaderEnd <= end:
		text = splitInline(src, lineStart, end, a, hasDoc)
	case hasDoc:
		text = removeStatement(src, lineStart, end, a.DocStart, a.DocEnd)
	default:
		text = string(src[lineStart:end])
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(dedent(lines), "\n")
}

// splitInline returns the header of an inline definition followed by its body
// statements on the next line, indented one level. An inline docstring and the
// ';' after it are dropped.
func splitInline(src []byte, from, to int, a domain.DocAnchor, hasDoc bool) string {
	rest := a.BodyStart
	if hasDoc {
		rest = skipSeparator(src, a.DocEnd, to)
	}
	header := string(src[from:a.HeaderEnd])
	body := strings.TrimLeft(string(src[min(rest, to):to]), " \t")
	if strings.TrimSpace(body) == "" {
		return header
	}
	return header + "\n" + a.Indent + body
}

// skipSeparator returns the offset after a ';' statement separator following
// offset, or offset itself when none follows on the same line.
func skipSeparator(src []byte, offset, limit int) int {
	i := offset
	for i < limit && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i >= limit || src[i] != ';' {
		return offset
	}
	i++
	for i < limit && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

// removeStatement returns src[from:to] without [stmtStart, stmtEnd) and any ';'
// that follows it. When the statement sits alone on its line the whole line goes
// with it.
func removeStatement(src []byte, from, to, stmtStart, stmtEnd int) string {
	cutStart, cutEnd := stmtStart, skipSeparator(src, stmtEnd, to)

	ls := stmtStart
	for ls > from && src[ls-1] != '\n' {
		ls--
	}
	le := cutEnd
	for le < to && src[le] != '\n' {
		le++
	}
	if strings.TrimSpace(string(src[ls:stmtStart])) == "" && strings.TrimSpace(string(src[cutEnd:le])) == "" {
		cutStart = ls
		cutEnd = le
		if cutEnd < to {
			cutEnd++ // newline
		}
	}

	var b strings.Builder
	b.Write(src[from:cutStart])
	b.Write(src[cutEnd:to])
	return b.String()
}

// dedent removes the longest whitespace prefix shared by all non-blank lines.
func dedent(lines []string) []string {
	prefix := ""
	found := false
	for _, line := range lines {
		if line == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = indent, true
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if prefix == "" {
		return lines
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return lines
}

// lineIndent returns the whitespace that starts the line containing offset.
func lineIndent(src []byte, offset int) string {
	ls := offset
	for ls > 0 && src[ls-1] != '\n' {
		ls--
	}
	le := ls
	for le < len(src) && (src[le] == ' ' || src[le] == '\t') {
		le++
	}
	return string(src[ls:le])
}

// indentUnit guesses one level of indentation from the line containing offset.
func indentUnit(src []byte, offset int) string {
	if strings.Contains(lineIndent(src, offset), "\t") {
		return "\t"
	}
	return "    "
}
