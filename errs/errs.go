// Package errs defines the closed set of error kinds the engine can surface to callers. Each kind is a distinct
// type so that callers can discriminate with errors.As instead of matching on strings.
package errs

import (
	"fmt"

	"github.com/coldspire/cqlwire/primitive"
)

// InternalDriverError signals a broken invariant inside the engine itself, never a caller or server mistake.
type InternalDriverError struct {
	Err error
}

func NewInternalDriverError(err error) *InternalDriverError { return &InternalDriverError{Err: err} }

func (e *InternalDriverError) Error() string { return fmt.Sprintf("internal driver error: %v", e.Err) }
func (e *InternalDriverError) Unwrap() error { return e.Err }

// StartupTimeout reports that the OPTIONS/STARTUP negotiation did not complete within the configured timeout.
type StartupTimeout struct {
	Err error
}

func NewStartupTimeout(err error) *StartupTimeout { return &StartupTimeout{Err: err} }

func (e *StartupTimeout) Error() string { return fmt.Sprintf("startup timed out: %v", e.Err) }
func (e *StartupTimeout) Unwrap() error { return e.Err }

// RequestTimeout reports that a single request did not receive a response within the configured timeout.
type RequestTimeout struct {
	Err error
}

func NewRequestTimeout(err error) *RequestTimeout { return &RequestTimeout{Err: err} }

func (e *RequestTimeout) Error() string { return fmt.Sprintf("request timed out: %v", e.Err) }
func (e *RequestTimeout) Unwrap() error { return e.Err }

// BadInput reports a mismatch between a caller-supplied bound value and the type or count the server expects,
// detected before the request is ever sent.
type BadInput struct {
	Expected string
	Got      string
	Detail   string
}

func NewBadInput(expected, got, detail string) *BadInput {
	return &BadInput{Expected: expected, Got: got, Detail: detail}
}

func (e *BadInput) Error() string {
	if e.Expected == "" && e.Got == "" {
		return fmt.Sprintf("bad input: %s", e.Detail)
	}
	return fmt.Sprintf("bad input: expected %s, got %s: %s", e.Expected, e.Got, e.Detail)
}

// TypeViolation reports an invalid enum value or event name supplied by the caller.
type TypeViolation struct {
	Detail string
}

func NewTypeViolation(detail string) *TypeViolation { return &TypeViolation{Detail: detail} }

func (e *TypeViolation) Error() string { return fmt.Sprintf("type violation: %s", e.Detail) }

// TooManyStreams reports that a connection's stream-id space (2^15 ids) is fully allocated.
type TooManyStreams struct {
	MaxInFlight int
}

func NewTooManyStreams(maxInFlight int) *TooManyStreams { return &TooManyStreams{MaxInFlight: maxInFlight} }

func (e *TooManyStreams) Error() string {
	return fmt.Sprintf("too many in-flight streams: limit is %d", e.MaxInFlight)
}

// ServerError wraps a CQL ERROR payload, preserving the server-supplied code, message and structured details
// verbatim.
type ServerError struct {
	Code    primitive.ErrorCode
	Message string
	Details map[string]string
}

func NewServerError(code primitive.ErrorCode, message string, details map[string]string) *ServerError {
	return &ServerError{Code: code, Message: message, Details: details}
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %v: %s", e.Code, e.Message)
}

// ConnectionDropped reports that the underlying socket closed, or was closed, while requests were outstanding.
type ConnectionDropped struct {
	Err error
}

func NewConnectionDropped(err error) *ConnectionDropped { return &ConnectionDropped{Err: err} }

func (e *ConnectionDropped) Error() string { return fmt.Sprintf("connection dropped: %v", e.Err) }
func (e *ConnectionDropped) Unwrap() error { return e.Err }

// VersionMismatch reports that the server's response carried a protocol version the engine does not speak.
type VersionMismatch struct {
	Expected primitive.ProtocolVersion
	Got      primitive.ProtocolVersion
}

func NewVersionMismatch(expected, got primitive.ProtocolVersion) *VersionMismatch {
	return &VersionMismatch{Expected: expected, Got: got}
}

func (e *VersionMismatch) Error() string {
	return fmt.Sprintf("protocol version mismatch: expected %v, got %v", e.Expected, e.Got)
}

// ProtocolError reports a malformed frame: wrong header shape, residual bytes after decoding a body, or similar
// wire-level violations that are not attributable to a specific server ERROR payload.
type ProtocolError struct {
	Detail string
}

func NewProtocolError(detail string) *ProtocolError { return &ProtocolError{Detail: detail} }

func (e *ProtocolError) Error() string { return fmt.Sprintf("protocol error: %s", e.Detail) }

// UnknownPayload reports an opcode or result kind the engine has no decoder for.
type UnknownPayload struct {
	Detail string
}

func NewUnknownPayload(detail string) *UnknownPayload { return &UnknownPayload{Detail: detail} }

func (e *UnknownPayload) Error() string { return fmt.Sprintf("unknown payload: %s", e.Detail) }
