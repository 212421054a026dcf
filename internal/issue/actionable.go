// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// ActionableError is a failure the CLI can show as-is: what the updater
	// was doing, the path or project involved, and what the user can try.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("update plugin bundle").
	//		WithResource("/opt/dorion/injection").
	//		Wrap(cause).
	//		WithKindHints().
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "update plugin bundle".
		Operation string
		// Resource is the directory, file or project involved, if any.
		Resource string
		// Suggestions are one-line remediation hints.
		Suggestions []string
		// Cause is the wrapped failure.
		Cause error
	}

	// ErrorContext accumulates the pieces of an ActionableError.
	ErrorContext struct {
		err       ActionableError
		kindHints bool
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Kind classifies the wrapped cause.
func (e *ActionableError) Kind() Kind {
	return KindOf(e.Cause)
}

// Help returns the help page for the cause's kind, or nil.
func (e *ActionableError) Help() *Issue {
	return Get(e.Kind())
}

// Format renders the message with its suggestions as a bulleted list. The
// verbose form also numbers every error in the cause's unwrap chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteByte('\n')
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for i, msg := range unwrapChain(e.Cause) {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, msg)
		}
	}
	return b.String()
}

// unwrapChain lists err and every error below it along the single-Unwrap
// chain.
func unwrapChain(err error) []string {
	var chain []string
	for ; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, err.Error())
	}
	return chain
}

// WithOperation sets the operation, as a verb phrase.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the directory, file or project involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends hints in the order given.
func (c *ErrorContext) WithSuggestion(sugs ...string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sugs...)
	return c
}

// WithKindHints appends, at build time, the suggestions of the help page for
// the cause's kind.
func (c *ErrorContext) WithKindHints() *ErrorContext {
	c.kindHints = true
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// BuildError returns the accumulated ActionableError, or nil when no
// operation was set.
func (c *ErrorContext) BuildError() error {
	if c.err.Operation == "" {
		return nil
	}

	ae := c.err
	ae.Suggestions = slices.Clone(ae.Suggestions)
	if c.kindHints {
		if page := ae.Help(); page != nil {
			ae.Suggestions = append(ae.Suggestions, page.Suggestions()...)
		}
	}
	return &ae
}
