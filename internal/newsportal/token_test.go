package newsportal

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", "fu-news", time.Hour)

	token, expiresAt, err := tokens.Issue(Claims{AccountID: 7, Email: "anna@fu.edu", Role: RoleStaff})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, Claims{AccountID: 7, Email: "anna@fu.edu", Role: RoleStaff}, claims)
}

func TestTokens_ParseRejects(t *testing.T) {
	tokens := NewTokens("secret", "fu-news", time.Hour)
	valid, _, err := tokens.Issue(Claims{AccountID: 1, Role: RoleAdmin})
	require.NoError(t, err)

	expired := NewTokens("secret", "fu-news", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(Claims{AccountID: 1})
	require.NoError(t, err)

	otherIssuer, _, err := NewTokens("secret", "someone-else", time.Hour).Issue(Claims{AccountID: 1})
	require.NoError(t, err)

	wrongSecret, _, err := NewTokens("other", "fu-news", time.Hour).Issue(Claims{AccountID: 1})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "role": 0, "iss": "fu-news", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"Expired":      expiredToken,
		"OtherIssuer":  otherIssuer,
		"WrongSecret":  wrongSecret,
		"NoneAlg":      unsigned,
		"Garbage":      "not-a-token",
		"TamperedTail": valid[:len(valid)-2] + "xx",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokens_DefaultTTL(t *testing.T) {
	tokens := NewTokens("secret", "fu-news", 0)
	assert.Equal(t, defaultTokenTTL, tokens.ttl)
}
