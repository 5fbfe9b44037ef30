package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("Abc12345!")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "Abc12345!", digest)

	assert.True(t, CheckPassword(digest, "Abc12345!"))
	assert.False(t, CheckPassword(digest, "wrong-password"))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("Abc12345!")
	require.NoError(t, err)
	second, err := HashPassword("Abc12345!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "Abc12345!"))
	assert.True(t, CheckPassword(second, "Abc12345!"))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty", digest: ""},
		{name: "garbage", digest: "not-a-bcrypt-digest"},
		{name: "truncated", digest: "$2a$10$abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.False(t, CheckPassword(tt.digest, "Abc12345!"))
		})
	}
}
