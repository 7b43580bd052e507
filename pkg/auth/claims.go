package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims carries the back office user identity inside a JWT.
type AccessTokenClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AccessTokenPayload is the input for minting a token.
type AccessTokenPayload struct {
	UserID int64
	Role   string
	JTI    string
}
