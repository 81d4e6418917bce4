package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

func TestTokens(t *testing.T) {
	sess := Session{ID: "S0001", Role: user.RoleStudent, Name: "Asha", Roll: "1", Class: "CS-7A"}
	tokens := NewTokens("secret", "Attendance ERP", time.Hour)

	token, err := tokens.Generate(sess)
	require.NoError(t, err)
	assert.NotContains(t, token, "password")

	t.Run("round trip", func(t *testing.T) {
		got, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, sess, got)
	})

	t.Run("unique ids", func(t *testing.T) {
		other, err := tokens.Generate(sess)
		require.NoError(t, err)
		assert.NotEqual(t, token, other)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := NewTokens("other", "Attendance ERP", time.Hour).Parse(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewTokens("secret", "Other", time.Hour).Parse(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokens("secret", "Attendance ERP", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		_, err := tokens.Parse(parts[0] + "." + parts[1] + "x." + parts[2])
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Session: sess}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Parse(unsigned)
		assert.Error(t, err)
	})
}
