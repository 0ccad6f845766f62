// Package auth verifies session tokens with the external identity provider and gates routes.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidSession is returned by a Verifier when the provider rejects the token.
var ErrInvalidSession = errors.New("invalid session")

// Principal is the verified caller.
type Principal struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (*Principal, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (*Principal, error) {
	return f(ctx, token)
}
