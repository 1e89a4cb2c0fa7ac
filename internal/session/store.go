// Package session maps opaque bearer tokens to user ids.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

type Store interface {
	Put(ctx context.Context, token string, userID uint) error
	Get(ctx context.Context, token string) (uint, error)
	// Remove is a no-op for unknown tokens.
	Remove(ctx context.Context, token string) error
}
