package cdm

import (
	"encoding/base64"
)

// Auth is the credential mode used for the Authorization header.
// It is either BearerAuth or BasicAuth.
type Auth interface {
	// Scheme returns the Authorization scheme ("Bearer" or "Basic").
	Scheme() string

	// Credentials returns the value that follows the scheme in the header.
	Credentials() string

	isAuth()
}

// BearerAuth authenticates with an API token.
type BearerAuth struct {
	Token string
}

// Scheme returns "Bearer".
func (BearerAuth) Scheme() string { return "Bearer" }

// Credentials returns the token.
func (a BearerAuth) Credentials() string { return a.Token }

func (BearerAuth) isAuth() {}

// BasicAuth authenticates with a username and password.
type BasicAuth struct {
	Username string
	Password string
}

// Scheme returns "Basic".
func (BasicAuth) Scheme() string { return "Basic" }

// Credentials returns base64("username:password").
func (a BasicAuth) Credentials() string {
	return base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
}

func (BasicAuth) isAuth() {}

// AuthorizationHeader returns the full Authorization header value for auth,
// e.g. "Bearer abc123" or "Basic dXNlcjpwYXNz".
func AuthorizationHeader(auth Auth) string {
	return auth.Scheme() + " " + auth.Credentials()
}
