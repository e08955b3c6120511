// Package lrerr holds the typed errors returned by the grammar, table, and
// engine packages. It mirrors the sentinel-plus-wrapper pattern used
// elsewhere in this codebase: a handful of errors.New constants identify the
// *kind* of failure for use with errors.Is, and Error wraps one of them with
// a message specific to the offending grammar or parse.
package lrerr

import "errors"

var (
	// ErrUndefinedNonTerminal is the kind for a non-terminal that appears on
	// some production's right-hand side but has no production of its own.
	ErrUndefinedNonTerminal = errors.New("undefined non-terminal")

	// ErrUnreachableNonTerminal is the kind for a non-terminal with
	// productions that can never be reached from the start symbol. It is
	// informational: grammar construction reports it but does not fail.
	ErrUnreachableNonTerminal = errors.New("unreachable non-terminal")

	// ErrHasConflicts is the kind for a parsing table with one or more
	// unresolved shift/reduce, reduce/reduce, or shift/shift conflicts. An
	// engine refuses to be built on a table with this error.
	ErrHasConflicts = errors.New("grammar is not LR(1): table has conflicts")

	// ErrNoAction is the kind for a parse step where ACTION[state, lookahead]
	// is undefined.
	ErrNoAction = errors.New("no action defined for state and lookahead")

	// ErrMissingGoto is the kind for a parse step where, after a reduction,
	// GOTO[state, lhs] is undefined.
	ErrMissingGoto = errors.New("no goto defined for state and symbol")

	// ErrStepLimitExceeded is the kind for a parse that ran past its safety
	// bound on step count without reaching accept or error.
	ErrStepLimitExceeded = errors.New("step limit exceeded")

	// ErrCancelled is the kind for a cooperative abort requested mid-fixed-point
	// or mid-parse.
	ErrCancelled = errors.New("cancelled")
)

// Error is a typed error carrying a descriptive message plus the sentinel
// kind it should compare equal to under errors.Is.
type Error struct {
	msg  string
	kind error
}

// New returns an Error of the given kind with the given message.
func New(kind error, msg string) Error {
	return Error{msg: msg, kind: kind}
}

// Error returns the message for this error.
func (e Error) Error() string {
	return e.msg
}

// Is reports whether target is the kind this Error was constructed with,
// allowing callers to write errors.Is(err, lrerr.ErrNoAction) instead of
// type-asserting on Error and comparing kind fields directly.
func (e Error) Is(target error) bool {
	return e.kind == target
}

// Unwrap exposes the underlying kind so that errors.Is/As chains work when
// Error is itself wrapped by a caller with fmt.Errorf("...: %w", err).
func (e Error) Unwrap() error {
	return e.kind
}
