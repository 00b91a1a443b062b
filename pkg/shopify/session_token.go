package shopify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var sessionSigningMethod = jwt.SigningMethodHS256

type sessionClaims struct {
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

// ParseSessionToken verifies an App Bridge session token against the app
// secret and returns the shop domain from its dest claim.
func ParseSessionToken(appSecret, token string) (string, error) {
	if strings.TrimSpace(appSecret) == "" {
		return "", errors.New("app secret is required")
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(appSecret), nil
		},
		jwt.WithValidMethods([]string{sessionSigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	shop := strings.TrimPrefix(strings.TrimSpace(claims.Dest), "https://")
	shop = strings.TrimSuffix(shop, "/")
	if shop == "" {
		return "", errors.New("session token has no dest claim")
	}
	return shop, nil
}
