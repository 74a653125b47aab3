// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal wraps the few raw terminal operations the CLI needs:
// reading secrets without echo, measuring width and erasing prompts.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Width returns the width of stdout, or 80 when it is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsInteractive reports whether r is a terminal.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LinesFor returns how many terminal rows textLength characters occupy at
// the given width, plus the empty row left after the user presses Enter.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	return lines + 1
}

// ClearPreviousLines erases the rows used by a prompt and its answer.
func ClearPreviousLines(w io.Writer, textLength int) {
	n := LinesFor(textLength, Width())
	for i := 0; i < n; i++ {
		_, _ = fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			_, _ = fmt.Fprint(w, "\x1b[1A")
		}
	}
}

// ReadSecret prompts on w and reads a line without echo. When stdin is not a
// terminal the line is read from in as plain text.
func ReadSecret(w io.Writer, in io.Reader, prompt string) (string, error) {
	_, _ = fmt.Fprint(w, prompt)
	if IsInteractive(in) {
		b, err := term.ReadPassword(int(in.(*os.File).Fd()))
		_, _ = fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
