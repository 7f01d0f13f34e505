// Package status carries the result/error value returned by every fallible
// bus operation. A Status pairs a machine-checkable Code with an optional
// human-readable message and satisfies the error interface so it can flow
// through ordinary Go error plumbing.
package status

import "fmt"

// Code enumerates the failure reasons a bus operation can report.
type Code int

const (
	CodeOK Code = iota
	CodeCancelled
	CodeInvalidArgument
	CodeNotFound
	CodeAlreadyExists
	CodePermissionDenied
	CodeResourceExhausted
	CodeFailedPrecondition
	CodeAborted
	CodeUnavailable
	CodeInternal
	CodeDataLoss
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeCancelled:
		return "cancelled"
	case CodeInvalidArgument:
		return "invalid-argument"
	case CodeNotFound:
		return "not-found"
	case CodeAlreadyExists:
		return "already-exists"
	case CodePermissionDenied:
		return "permission-denied"
	case CodeResourceExhausted:
		return "resource-exhausted"
	case CodeFailedPrecondition:
		return "failed-precondition"
	case CodeAborted:
		return "aborted"
	case CodeUnavailable:
		return "unavailable"
	case CodeInternal:
		return "internal"
	case CodeDataLoss:
		return "data-loss"
	default:
		return "unknown"
	}
}

// Status is the outcome of a fallible operation.
type Status struct {
	Code    Code
	Message string
}

// OK returns a success status.
func OK() Status { return Status{Code: CodeOK} }

// New builds a status with the given code and message.
func New(code Code, msg string) Status { return Status{Code: code, Message: msg} }

// Errf builds a non-ok status with a formatted message.
func Errf(code Code, format string, args ...any) Status {
	return Status{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsOK reports whether the status carries no failure.
func (s Status) IsOK() bool { return s.Code == CodeOK }

// Err returns the status as an error, or nil when it is ok.
func (s Status) Err() error {
	if s.IsOK() {
		return nil
	}
	return s
}

func (s Status) Error() string {
	if s.Message == "" {
		return s.Code.String()
	}
	return s.Code.String() + ": " + s.Message
}
