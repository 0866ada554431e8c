package domain

import (
	"errors"
	"fmt"
)

// Handshake errors
var (
	// ErrInvalidHandshake is the category every handshake failure belongs to.
	// A server receiving a request that fails with it must answer 400 Bad Request.
	ErrInvalidHandshake = errors.New("invalid handshake")

	// Header errors
	ErrInvalidHeader       = errors.New("invalid header")
	ErrInvalidHeaderFormat = errors.New("invalid header format")
	ErrInvalidHeaderValue  = errors.New("invalid header value")
	ErrInvalidUpgrade      = errors.New("invalid upgrade")

	// ErrInvalidStatus is returned when the server answers with anything but 101
	ErrInvalidStatus = errors.New("invalid status code")
)

// HandshakeError describes which header broke the handshake and how
type HandshakeError struct {
	Err    error  // Kind sentinel: ErrInvalidHeader, ErrInvalidHeaderValue, ...
	Header string // Header name
	Value  string // Offending value, if any
	Reason string // Optional human-readable detail
}

// NewMissingHeaderError reports a required header that is absent
func NewMissingHeaderError(name string) *HandshakeError {
	return &HandshakeError{Err: ErrInvalidHeader, Header: name, Reason: "missing " + name + " header"}
}

// NewDuplicatedHeaderError reports a header that must occur once but occurs more often
func NewDuplicatedHeaderError(name string) *HandshakeError {
	return &HandshakeError{Err: ErrInvalidHeader, Header: name, Reason: "more than one " + name + " header found"}
}

// NewHeaderValueError reports a header whose single value fails a format or equality check
func NewHeaderValueError(name, value string) *HandshakeError {
	return &HandshakeError{Err: ErrInvalidHeaderValue, Header: name, Value: value}
}

// NewHeaderFormatError reports a list header that does not parse
func NewHeaderFormatError(name, value, reason string) *HandshakeError {
	return &HandshakeError{Err: ErrInvalidHeaderFormat, Header: name, Value: value, Reason: reason}
}

// NewUpgradeError reports Connection or Upgrade tokens that do not request a WebSocket upgrade
func NewUpgradeError(name, value string) *HandshakeError {
	if value == "" {
		return &HandshakeError{Err: ErrInvalidUpgrade, Header: name, Reason: "missing " + name + " header"}
	}
	return &HandshakeError{Err: ErrInvalidUpgrade, Header: name, Value: value}
}

// Error implements the error interface
func (e *HandshakeError) Error() string {
	var msg string
	switch {
	case e.Reason != "" && e.Value != "":
		msg = fmt.Sprintf("invalid %s header: %s: %s", e.Header, e.Reason, e.Value)
	case e.Reason != "":
		msg = e.Reason
	case e.Value == "":
		msg = fmt.Sprintf("empty %s header", e.Header)
	default:
		msg = fmt.Sprintf("invalid %s header: %s", e.Header, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Err, msg)
}

// Unwrap exposes the kind sentinel and the handshake category to errors.Is.
// Format errors are also header errors.
func (e *HandshakeError) Unwrap() []error {
	if e.Err == ErrInvalidHeaderFormat {
		return []error{e.Err, ErrInvalidHeader, ErrInvalidHandshake}
	}
	return []error{e.Err, ErrInvalidHandshake}
}
