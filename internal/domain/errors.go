package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies an error by how the turn should recover from it.
type FailureKind int

const (
	// FailureUnknown covers unexpected errors caught at the top of the
	// pipeline; the last line of defense before the fixed fallback reply.
	FailureUnknown FailureKind = iota
	// FailureUserInput is an unparseable amount, missing or malformed
	// address, or unsupported token. Always recovered into a clarification.
	FailureUserInput
	// FailureInsufficientFunds is a balance or fee shortfall.
	FailureInsufficientFunds
	// FailureCollaborator is a price, history, or model call that failed or
	// timed out; the turn degrades rather than fails.
	FailureCollaborator
)

func (k FailureKind) String() string {
	switch k {
	case FailureUserInput:
		return "user_input"
	case FailureInsufficientFunds:
		return "insufficient_funds"
	case FailureCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// ClassifiedError carries a structured FailureKind so callers branch on the
// kind instead of matching message text.
type ClassifiedError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *ClassifiedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ClassifiedError) Unwrap() error { return e.Err }

func NewUserInputError(op string, err error) *ClassifiedError {
	return &ClassifiedError{Kind: FailureUserInput, Op: op, Err: err}
}

func NewCollaboratorError(op string, err error) *ClassifiedError {
	return &ClassifiedError{Kind: FailureCollaborator, Op: op, Err: err}
}

// Classify extracts the FailureKind from an error chain. Unclassified errors
// report FailureUnknown.
func Classify(err error) FailureKind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return FailureUnknown
}
