package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-03-07", FormatDate(d))

	for _, bad := range []string{"", "07.03.2024", "2024-02-30", "2024-3-7"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestCustomerTokenRoundTrip(t *testing.T) {
	pair, err := GenerateCustomerToken(42, "secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := ValidateToken(pair.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, 42, claims.CustomerID)
	assert.Equal(t, RoleCustomer, claims.Role)
	assert.Equal(t, "42", claims.Subject)

	_, err = ValidateToken(pair.AccessToken, "other")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	pair, err := GenerateCustomerToken(1, "secret", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = ValidateToken(pair.AccessToken, "secret")
	require.Error(t, err)
	assert.True(t, IsTokenExpired(err))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1h 2m 3s", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "5s", FormatDuration(5*time.Second))
}
