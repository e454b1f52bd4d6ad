package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type APIClaims struct {
	Subject string `json:"sub_name"`
	jwt.RegisteredClaims
}

// CreateAPIToken mints a signed token for the HTTP API.
func CreateAPIToken(secret, subject string, ttl time.Duration) (string, error) {
	claims := APIClaims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAPIToken validates a token and returns its claims.
func ParseAPIToken(secret, tokenString string) (*APIClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &APIClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*APIClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
