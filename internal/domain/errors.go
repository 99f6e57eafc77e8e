package domain

import "errors"

// ErrConversationNotFound is returned by stores when a conversation id is
// unknown.
var ErrConversationNotFound = errors.New("conversation not found")

// ErrEmptyInput is returned by services when user text is empty after
// trimming. Input is rejected before it ever reaches the prompt builder.
var ErrEmptyInput = errors.New("input text is required")

// GatewayErrorKind classifies gateway failures.
type GatewayErrorKind int

const (
	// GatewayTransport means the outbound call itself failed or was
	// rejected. The user sees a generic retry message.
	GatewayTransport GatewayErrorKind = iota

	// GatewayEmpty means the call succeeded but produced no usable text or
	// image. This is a content decision by the model, not a failure.
	GatewayEmpty
)

// GatewayError is the only error type the gateway surfaces. Msg is safe to
// show to the user; the transport-level cause stays wrapped.
type GatewayError struct {
	Kind  GatewayErrorKind
	Msg   string
	cause error
}

func NewGatewayError(kind GatewayErrorKind, msg string, cause error) *GatewayError {
	return &GatewayError{Kind: kind, Msg: msg, cause: cause}
}

func (e *GatewayError) Error() string {
	return e.Msg
}

func (e *GatewayError) Unwrap() error {
	return e.cause
}

// AsGatewayError unwraps err into a *GatewayError if there is one in the chain.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
