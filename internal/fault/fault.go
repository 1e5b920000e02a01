// Package fault defines the structured error vocabulary shared by every
// layer. Both entry surfaces render errors as {kind, message}: the CLI
// prints them to stderr, the MCP server returns them in the tool result.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies a failure class. The set is closed; callers switch on it
// to decide whether an operation is retryable.
type Kind string

const (
	NoDisplaysDetected    Kind = "NoDisplaysDetected"
	PermissionDenied      Kind = "PermissionDenied"
	InvalidScreenIndex    Kind = "InvalidScreenIndex"
	InvalidParameters     Kind = "InvalidParameters"
	DisplayVanished       Kind = "DisplayVanished"
	PartialCaptureFailure Kind = "PartialCaptureFailure"
	EncodingFailure       Kind = "EncodingFailure"
	WriteFailure          Kind = "WriteFailure"
	CaptureInProgress     Kind = "CaptureInProgress"
	UpstreamUnavailable   Kind = "UpstreamUnavailable"
	UpstreamTimeout       Kind = "UpstreamTimeout"
	UpstreamRefused       Kind = "UpstreamRefused"
)

// Error carries a Kind plus a human-readable message. It optionally wraps
// an underlying cause for errors.Is/As chains.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a fault with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a fault whose message includes the cause and which unwraps
// to it.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// KindOf extracts the Kind from err, walking the wrap chain. Returns ok=false
// for errors that carry no fault.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
