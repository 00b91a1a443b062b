package shopify

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signSessionToken(t *testing.T, secret string, claims sessionClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func sessionTestClaims(dest string) sessionClaims {
	return sessionClaims{
		Dest: dest,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    dest + "/admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
}

func TestParseSessionToken(t *testing.T) {
	token := signSessionToken(t, "secret", sessionTestClaims("https://demo.myshopify.com"))

	shop, err := ParseSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "demo.myshopify.com", shop)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token := signSessionToken(t, "secret", sessionTestClaims("https://demo.myshopify.com"))

	_, err := ParseSessionToken("other-secret", token)
	require.Error(t, err)
}

func TestParseSessionToken_Expired(t *testing.T) {
	claims := sessionTestClaims("https://demo.myshopify.com")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signSessionToken(t, "secret", claims)

	_, err := ParseSessionToken("secret", token)
	require.Error(t, err)
}

func TestParseSessionToken_MissingDest(t *testing.T) {
	token := signSessionToken(t, "secret", sessionTestClaims(""))

	_, err := ParseSessionToken("secret", token)
	require.Error(t, err)
}

func TestParseSessionToken_RejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, sessionTestClaims("https://demo.myshopify.com"))
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", raw)
	require.Error(t, err)
}

func TestParseSessionToken_RequiresSecret(t *testing.T) {
	_, err := ParseSessionToken("  ", "whatever")
	require.Error(t, err)
}
