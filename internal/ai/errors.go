package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a failed generation so the UI can report it without
// inspecting error strings.
type ErrorKind int

const (
	KindTimeout ErrorKind = iota
	KindAuthFailure
	KindNetworkFailure
	KindProviderError
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindAuthFailure:
		return "auth failure"
	case KindNetworkFailure:
		return "network failure"
	default:
		return "provider error"
	}
}

// GenerationError is the one error type the session engine sees from the
// generator. It never aborts a session; it is rendered as text.
type GenerationError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func genErr(op string, kind ErrorKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Op: op, Err: err}
}

// classifyTransport maps a transport-level error to a GenerationError.
func classifyTransport(op string, err error) *GenerationError {
	if errors.Is(err, context.DeadlineExceeded) {
		return genErr(op, KindTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return genErr(op, KindTimeout, err)
	}
	return genErr(op, KindNetworkFailure, err)
}

// classifyStatus maps a non-2xx HTTP status to a GenerationError.
func classifyStatus(op string, status int, body string) *GenerationError {
	if status == 401 || status == 403 {
		return genErr(op, KindAuthFailure, fmt.Errorf("status %d: %s", status, body))
	}
	return genErr(op, KindProviderError, fmt.Errorf("status %d: %s", status, body))
}
