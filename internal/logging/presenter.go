// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	apperr "pgassist/cli/internal/errors"

	"github.com/pterm/pterm"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatFailure renders a core failure with a title, the masked message and
// the action the user should take next, chosen by the error kind.
func FormatFailure(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	title, action := "Request failed", "→ Please try again"

	switch apperr.KindOf(err) {
	case apperr.Validation:
		title, action = "Missing input", "→ Provide the missing value and try again"
	case apperr.Auth:
		title, action = "Not connected", "→ Please run 'pgassist connect' first"
	case apperr.Remote:
		title = "Service returned an error"
		if status := apperr.StatusOf(err); status == 401 || status == 403 {
			action = "→ Your session may have expired, run 'pgassist connect' again"
		}
	case apperr.Network:
		title, action = "Service unreachable", "→ Check that the translation service is running"
	}

	b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(title))
	b.WriteString("\n")
	b.WriteString(Mask(err.Error()))
	b.WriteString("\n")
	b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint(action))
	return b.String()
}
