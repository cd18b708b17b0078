package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Run("should round-trip the user claims", func(t *testing.T) {
		req := require.New(t)
		id := uuid.New()

		token, err := GenerateToken(id, "john", "secret", time.Hour)
		req.NoError(err)

		claims, err := ParseToken(token, "secret")
		req.NoError(err)
		req.Equal(id, claims.UserID)
		req.Equal("john", claims.Username)
		req.Equal(Issuer, claims.Issuer)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		token, err := GenerateToken(uuid.New(), "john", "secret", time.Hour)
		req.NoError(err)

		_, err = ParseToken(token, "other")
		req.Error(err)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		token, err := GenerateToken(uuid.New(), "john", "secret", -time.Minute)
		req.NoError(err)

		_, err = ParseToken(token, "secret")
		req.ErrorIs(err, jwt.ErrTokenExpired)
	})

	t.Run("should reject an unsigned token", func(t *testing.T) {
		req := require.New(t)
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.New()})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		req.NoError(err)

		_, err = ParseToken(token, "secret")
		req.Error(err)
	})

	t.Run("should reject a token without a user", func(t *testing.T) {
		req := require.New(t)
		token, err := GenerateToken(uuid.Nil, "john", "secret", time.Hour)
		req.NoError(err)

		_, err = ParseToken(token, "secret")
		req.ErrorContains(err, "no user_id")
	})
}
