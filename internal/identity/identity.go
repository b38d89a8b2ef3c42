// Package identity resolves who is calling and what roles they hold. Token
// issuance and account management belong to the external identity provider;
// this package only consumes it.
package identity

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"
)

// Role names as issued by the identity provider.
const (
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// Principal is the authenticated caller, extracted from the verified access
// token by the auth middleware.
type Principal struct {
	Username    string
	Roles       []string
	AccessToken string
}

// HasRole reports whether the principal holds the named role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

type principalKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext extracts the principal stored by the auth middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Service answers identity questions for the current request. Questions about
// the caller are answered from the request's own token; questions about other
// usernames go to the identity provider.
type Service interface {
	// Username returns the caller's username
	Username(ctx context.Context) string

	// AccessToken returns the caller's raw access token, forwarded on every
	// outbound authority call
	AccessToken(ctx context.Context) string

	// HasRole reports whether the named user holds the named role
	HasRole(ctx context.Context, username, role string) bool
}

// RoleDirectory resolves role membership for arbitrary users.
type RoleDirectory interface {
	UserHasRole(ctx context.Context, username, role string) (bool, error)
}

// ContextService is the default Service: caller facts come from the context
// principal, third-party role lookups are delegated to a RoleDirectory.
type ContextService struct {
	directory RoleDirectory
}

// NewContextService creates a Service backed by the given directory.
func NewContextService(directory RoleDirectory) *ContextService {
	return &ContextService{directory: directory}
}

func (s *ContextService) Username(ctx context.Context) string {
	p, _ := FromContext(ctx)
	return p.Username
}

func (s *ContextService) AccessToken(ctx context.Context) string {
	p, _ := FromContext(ctx)
	return p.AccessToken
}

func (s *ContextService) HasRole(ctx context.Context, username, role string) bool {
	if p, ok := FromContext(ctx); ok && p.Username == username {
		return p.HasRole(role)
	}
	if s.directory == nil {
		return false
	}
	has, err := s.directory.UserHasRole(ctx, username, role)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Warn("role lookup failed")
		return false
	}
	return has
}
