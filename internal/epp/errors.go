package epp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks stream failures. The session is closed.
	ErrTransport = errors.New("epp: transport failure")
	// ErrFraming marks a malformed length header. The session is closed.
	ErrFraming = errors.New("epp: framing error")
	// ErrEncode marks a request that could not be serialized. Nothing was sent.
	ErrEncode = errors.New("epp: encode failure")
	// ErrDecode marks a fully-read frame that did not decode. The stream is
	// still frame aligned.
	ErrDecode = errors.New("epp: decode failure")
	// ErrCorrelation marks a response whose clTRID differs from the request's.
	// The session is closed.
	ErrCorrelation = errors.New("epp: transaction id mismatch")
	// ErrProtocolState marks an operation attempted in the wrong session state.
	ErrProtocolState = errors.New("epp: protocol state violation")
)

// RegistryError is a decoded response whose result code is a failure.
type RegistryError struct {
	Code          ResultCode
	Message       string
	Reasons       []string
	TransactionID TransactionID
}

func (e *RegistryError) Error() string {
	msg := fmt.Sprintf("epp: registry error %d: %s", e.Code, e.Message)
	if len(e.Reasons) > 0 {
		msg += " (" + strings.Join(e.Reasons, "; ") + ")"
	}
	return msg
}

// IsFatal reports whether err leaves the session unusable.
func IsFatal(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrFraming) ||
		errors.Is(err, ErrCorrelation)
}

// AsRegistryError unwraps a *RegistryError from err.
func AsRegistryError(err error) (*RegistryError, bool) {
	var rerr *RegistryError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}
