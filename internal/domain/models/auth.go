package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the resolved caller identity the core trusts as given.
// Credential validation happens upstream in the auth middleware.
type Identity struct {
	Authenticated bool
	UserID        string
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// AuthenticatedAs returns the identity of a signed-in user.
func AuthenticatedAs(userID string) Identity {
	return Identity{Authenticated: true, UserID: userID}
}

// AccessClaims represents the JWT claims structure issued by the identity
// provider. Only the subject and role are load-bearing here.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}
