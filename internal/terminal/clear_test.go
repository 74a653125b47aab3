// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 2, LinesFor(0, 80))
	assert.Equal(t, 2, LinesFor(80, 80))
	assert.Equal(t, 3, LinesFor(81, 80))
	assert.Equal(t, 2, LinesFor(10, 0))
}

func TestReadSecret_NonTerminal(t *testing.T) {
	var out bytes.Buffer
	got, err := ReadSecret(&out, strings.NewReader("s3cret\r\nignored\n"), "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Password: ", out.String())

	got, err = ReadSecret(&out, strings.NewReader("no-newline"), "")
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)

	_, err = ReadSecret(&out, strings.NewReader(""), "")
	assert.Error(t, err)
}

func TestIsInteractive(t *testing.T) {
	assert.False(t, IsInteractive(strings.NewReader("x")))
}

func TestClearPreviousLines(t *testing.T) {
	var out bytes.Buffer
	ClearPreviousLines(&out, 5)
	assert.Equal(t, 2, strings.Count(out.String(), "\x1b[2K"))
	assert.Equal(t, 1, strings.Count(out.String(), "\x1b[1A"))
}
