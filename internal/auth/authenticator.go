package auth

import "context"

// Authenticator validates a bearer token and resolves the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}
