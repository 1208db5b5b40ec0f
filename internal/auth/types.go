package auth

import "errors"

// ErrInvalidToken is returned for any token that fails validation.
// Callers get no detail beyond this sentinel.
var ErrInvalidToken = errors.New("invalid token")

type Config struct {
	Enabled  bool
	Issuer   string
	Audience string
	JWKSURL  string
}

type Principal struct {
	Issuer   string
	Subject  string
	Audience any
	Claims   map[string]any
}
