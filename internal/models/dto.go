package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialsRequest is the body of both registration and login calls.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// EndpointRequest accepts either a plain CredentialsRequest or the tagged
// envelope form {"type": "Post", "body": {...}} used by older clients.
type EndpointRequest struct {
	Type string              `json:"type"`
	Body *CredentialsRequest `json:"body"`
	CredentialsRequest
}

// EnvelopeTypePost is the only envelope type the endpoints understand.
const EnvelopeTypePost = "Post"

// Credentials unwraps the envelope if one was sent.
func (r *EndpointRequest) Credentials() CredentialsRequest {
	if r.Body != nil {
		return *r.Body
	}
	return r.CredentialsRequest
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse describes the identity carried by a valid session token.
type SessionResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionClaims are the claims carried by issued session tokens.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// ErrorResponse standard error format
type ErrorResponse struct {
	ErrorMessage string `json:"error_message"`
}
