// SPDX-License-Identifier: MPL-2.0

package elevate

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// elevationDeclinedMarker is the line the PowerShell launcher prints when
// Start-Process fails, normally because the UAC prompt was declined. The
// child's exit code is passed through untouched, so no exit code is reserved
// for this case.
const elevationDeclinedMarker = "dorion-updater:elevation-declined"

// powershellScript builds the -Command script that starts exe elevated with
// args and propagates the child's exit code. A failed launch prints
// elevationDeclinedMarker and exits 1.
func powershellScript(exe string, args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = powershellArg(a)
	}

	var b strings.Builder
	b.WriteString("try { $p = Start-Process -FilePath ")
	b.WriteString(powershellLiteral(exe))
	b.WriteString(" -Verb RunAs -Wait -PassThru -ErrorAction Stop -ArgumentList @(")
	b.WriteString(strings.Join(quoted, ","))
	b.WriteString(") } catch { Write-Output '")
	b.WriteString(elevationDeclinedMarker)
	b.WriteString("'; exit 1 }; exit $p.ExitCode")
	return b.String()
}

// powershellArg wraps one argument as '"arg"': the outer single quotes are a
// PowerShell literal, the inner double quotes survive into the child's
// command line so arguments containing spaces stay whole.
func powershellArg(arg string) string {
	return powershellLiteral(windowsArg(arg))
}

// powershellLiteral single-quotes s for PowerShell, doubling embedded quotes.
func powershellLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// windowsArg double-quotes s following the CommandLineToArgvW rules: a run
// of backslashes is doubled when it precedes a quote or the closing quote,
// and embedded quotes are backslash-escaped.
func windowsArg(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			slashes++
		case '"':
			b.WriteString(strings.Repeat(`\`, slashes*2+1))
			b.WriteByte(c)
			slashes = 0
		default:
			b.WriteString(strings.Repeat(`\`, slashes))
			b.WriteByte(c)
			slashes = 0
		}
	}
	b.WriteString(strings.Repeat(`\`, slashes*2))
	b.WriteByte('"')
	return b.String()
}

// shellJoin renders argv as a single shell-quoted line for logging.
func shellJoin(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			// Only strings with NUL bytes are unquotable.
			q = "<unprintable>"
		}
		parts[i] = q
	}
	return strings.Join(parts, " ")
}
