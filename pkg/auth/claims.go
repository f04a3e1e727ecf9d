package auth

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the JWT claims carried by operator access tokens.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AdminTokenPayload captures the data minted into an admin token.
type AdminTokenPayload struct {
	Username string
	JTI      string
}
