// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// New returns the process logger. Verbose output enables debug records;
// otherwise only warnings and errors are written.
func New(w io.Writer, verbose bool) *pterm.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := pterm.LogLevelWarn
	if verbose {
		level = pterm.LogLevelDebug
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(w)
}

// Discard returns a logger that drops every record. Constructors fall back
// to it when handed a nil logger.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *pterm.Logger) *pterm.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
