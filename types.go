package authclient

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialExchanger turns credentials into users against the host's API.
// All methods may fail with whatever error the backend produces; those
// errors are surfaced to callers unchanged.
type CredentialExchanger[T any, R any] interface {
	DeleteUserSession(ctx context.Context, user *T) error
	UserFromCredentials(ctx context.Context, credentials R) (*T, error)
	CreateUserFromCredentials(ctx context.Context, credentials R, extra map[string]any) (*T, error)
}

// UserResolver restores a full user record from an opaque identifier,
// typically replayed from whatever the host persisted at shutdown.
type UserResolver[T any] interface {
	Find(ctx context.Context, userID any) (*T, error)
	// ParseUser normalizes every user obtained through a
	// CredentialExchanger before it is stored. Identity when not needed.
	ParseUser(ctx context.Context, user *T) (*T, error)
}

// Validatable is implemented by credential types that want to be checked
// before they reach the exchanger.
type Validatable interface {
	Validate() error
}

// ResolverFuncs adapts plain functions into a UserResolver, for hosts that
// do not want a dedicated type. A nil ParseFunc is the identity hook.
type ResolverFuncs[T any] struct {
	FindFunc  func(ctx context.Context, userID any) (*T, error)
	ParseFunc func(ctx context.Context, user *T) (*T, error)
}

func (r ResolverFuncs[T]) Find(ctx context.Context, userID any) (*T, error) {
	return r.FindFunc(ctx, userID)
}

func (r ResolverFuncs[T]) ParseUser(ctx context.Context, user *T) (*T, error) {
	if r.ParseFunc == nil {
		return user, nil
	}
	return r.ParseFunc(ctx, user)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHC "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTHC "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHC "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHC "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
