package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:       "Rp 0",
		500:     "Rp 500",
		50000:   "Rp 50.000",
		150000:  "Rp 150.000",
		1250000: "Rp 1.250.000",
		-7500:   "-Rp 7.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(in), "price %d", in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "18 Okt 2026", FormatDate(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1 Jan 2027", FormatDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", FormatDate(time.Time{}))
}

func TestSignAndParseJWT(t *testing.T) {
	tok, err := SignJWT("secret", "42", "Budi Santoso", 60)
	require.NoError(t, err)

	claims, err := ParseJWT("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "Budi Santoso", claims.Name)

	_, err = ParseJWT("other", tok)
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	tok, err := SignJWT("secret", "42", "Budi", -1)
	require.NoError(t, err)

	_, err = ParseJWT("secret", tok)
	assert.Error(t, err)
}
