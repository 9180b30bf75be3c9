package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed payload, expiry. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the bearer tokens used by the API.
// Tokens are HS256 JWTs carrying the user id and an expiry claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (ts *TokenService) Issue(userId int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userId,
		"exp": time.Now().Add(ts.ttl).Unix(),
	})
	return token.SignedString(ts.secret)
}

// Verify returns the user id the token was issued for. Malformed or
// attacker-controlled input never panics, it resolves to ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(id), nil
}
