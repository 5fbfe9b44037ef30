package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Handler signs and verifies the token pair with a process-wide secret that is
// injected once at startup.
type Handler struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (h *Handler) EncodeAccess(userID uint) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.AccessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.Secret)
}

func (h *Handler) EncodeRefresh() (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RefreshSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.RefreshTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.Secret)
}

func (h *Handler) DecodeAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := h.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	if claims.Subject == RefreshSubject || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// DecodeAccessExpired verifies the signature but tolerates an elapsed expiry.
// Refresh needs the user_id claim out of an access token that is usually
// already expired.
func (h *Handler) DecodeAccessExpired(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	err := h.parse(tokenStr, &claims)
	if err != nil && !errors.Is(err, ErrExpiredToken) {
		return nil, err
	}
	if claims.Subject == RefreshSubject || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (h *Handler) DecodeRefresh(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := h.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (h *Handler) parse(tokenStr string, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrInvalidToken
			}
			return h.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	if !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}
