package tokens

import "github.com/golang-jwt/jwt/v5"

// RefreshSubject marks a token as refresh-only so it cannot be replayed as an
// access token.
const RefreshSubject = "refresh_token"

type AccessClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}
