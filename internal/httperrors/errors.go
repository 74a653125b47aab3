// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains transport failures talking to the translation
// service in terms a user can act on.
package httperrors

import (
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	apperr "pgassist/cli/internal/errors"

	"github.com/pterm/pterm"
)

// Cause is the broad class of a transport failure.
type Cause string

const (
	CauseTimeout Cause = "timeout"
	CauseDNS     Cause = "dns"
	CauseRefused Cause = "refused"
	CauseTLS     Cause = "tls"
	CauseOther   Cause = "other"
)

// Classify reports the cause of a transport failure.
func Classify(err error) Cause {
	switch {
	case isTimeoutError(err):
		return CauseTimeout
	case isDNSError(err):
		return CauseDNS
	case isConnectionRefusedError(err):
		return CauseRefused
	case isSSLError(err):
		return CauseTLS
	default:
		return CauseOther
	}
}

// Present writes troubleshooting hints for a Network error to w and reports
// whether it did. Other errors are left to the caller.
func Present(w io.Writer, err error, context, baseURL string) bool {
	if !apperr.Is(err, apperr.Network) {
		return false
	}
	host := ExtractHostFromURL(baseURL)

	switch Classify(err) {
	case CauseTimeout:
		pterm.Fprintln(w, pterm.Sprintf("⏱️  Timed out while %s", context))
		pterm.Fprintln(w, "The service took too long to respond. This could mean:")
		pterm.Fprintln(w, "  • The model behind the service is still warming up")
		pterm.Fprintln(w, "  • The query is too expensive for the configured --timeout")
	case CauseDNS:
		pterm.Fprintln(w, pterm.Sprintf("🌐 Cannot resolve %s while %s", host, context))
		pterm.Fprintln(w, "Check the base_url setting or the PGASSIST_BASE_URL variable.")
	case CauseRefused:
		pterm.Fprintln(w, pterm.Sprintf("🚫 Connection refused by %s while %s", host, context))
		pterm.Fprintln(w, "The translation service is not listening. Please check:")
		pterm.Fprintln(w, "  • The service is started")
		pterm.Fprintln(w, "  • base_url points at the right host and port")
	case CauseTLS:
		pterm.Fprintln(w, pterm.Sprintf("🔒 Secure connection to %s failed while %s", host, context))
		pterm.Fprintln(w, "Use http:// for a local service, or check the certificate and system clock.")
	default:
		pterm.Fprintln(w, pterm.Sprintf("❌ Cannot reach the translation service at %s while %s", host, context))
	}
	pterm.Fprintln(w)
	return true
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// ExtractHostFromURL extracts the host from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
