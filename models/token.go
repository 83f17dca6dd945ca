package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with the claims civicwatch cares about.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set (sub, exp, iat,
// iss) and adds the user's role, which the HTTP layer uses to gate admin and
// worker route groups.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// Role is the account role carried as a custom claim.
	Role Role `json:"role,omitempty"`

	// SignedString is the compact JWS representation of the token.
	// Excluded from JSON so it never leaks into the claim set.
	SignedString string `json:"-"`

	// UserEmail is a cached copy of the "sub" claim.
	UserEmail string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
