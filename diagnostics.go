// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package grpsum

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mdhender/grpsum/groups"
)

// Span represents a range in the source: [Start, End).
type Span struct {
	// Byte offsets into the original input slice.
	Start int
	End   int

	// 1-based line and column of the start of the span.
	Line   int
	Column int
}

// Diagnostic represents an error or warning with a span in the
// original source.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Message  string     // "invalid integer"
	Span     Span       // where in the file it occurred
	Notes    []string   // optional additional help messages
}

// DiagnosticFromError returns a diagnostic for errors that point at a
// line in src. The second result is false for any other error.
func DiagnosticFromError(err error, src []byte) (Diagnostic, bool) {
	var pe *groups.ErrParseLine
	if !errors.As(err, &pe) {
		return Diagnostic{}, false
	}
	start := lineOffset(src, pe.Line) + pe.Column - 1
	diag := Diagnostic{
		Severity: slog.LevelError,
		Message:  fmt.Sprintf("invalid integer %q", pe.Text),
		Span: Span{
			Start:  start,
			End:    start + len(pe.Text),
			Line:   pe.Line,
			Column: pe.Column,
		},
		Notes: []string{"every non-blank line must be a base-10 integer"},
	}
	if errors.Is(pe.Err, groups.ErrOverflow) {
		diag.Message = fmt.Sprintf("adding %s overflows the group sum", pe.Text)
		diag.Notes = []string{"group sums must fit in a 64-bit integer"}
	}
	return diag, true
}

// PrintDiagnostic writes the diagnostic as a file:line:column header,
// the source line, and a caret under the start of the span.
// Only the first line of a multi-line span is shown.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string, src []byte) {
	span := diag.Span
	_, _ = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		filename, span.Line, span.Column,
		strings.ToLower(diag.Severity.String()), diag.Message)

	line := findLine(src, span.Start)
	_, _ = fmt.Fprintf(w, "    %s\n", line)

	// caret underline
	caretCount := utf8.RuneCount(line[:byteOffset(span.Column, line)])
	_, _ = fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretCount))

	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

// findLine returns the line containing the start byte, without the
// new-line. If there is no line, returns an empty slice.
func findLine(src []byte, start int) []byte {
	if start < 0 || start >= len(src) {
		return []byte{}
	}

	lineStart := 0
	for i := start - 1; i >= 0; i-- {
		if src[i] == '\n' {
			lineStart = i + 1
			break
		}
	}

	lineEnd := len(src)
	for i := lineStart; i < len(src); i++ {
		if src[i] == '\n' {
			lineEnd = i
			break
		}
	}
	return src[lineStart:lineEnd]
}

// lineOffset returns the byte offset of the start of the 1-based line.
func lineOffset(src []byte, line int) int {
	offset := 0
	for n := 1; n < line && offset < len(src); n++ {
		i := bytes.IndexByte(src[offset:], '\n')
		if i < 0 {
			return len(src)
		}
		offset += i + 1
	}
	return offset
}

// byteOffset converts a 1-based byte column into an offset, clamped to b.
func byteOffset(column int, b []byte) int {
	if column < 1 {
		return 0
	} else if column-1 > len(b) {
		return len(b)
	}
	return column - 1
}
