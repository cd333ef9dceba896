package auth

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"))

	ok, err := VerifyPassword(hash, "hunter2-but-longer")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "hunter3-but-longer")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltIsFreshPerCall(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPasswordWithSalt_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltLength)

	first, err := HashPasswordWithSalt("pw", salt)
	require.NoError(t, err)
	second, err := HashPasswordWithSalt("pw", salt)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHashPasswordWithSalt_RejectsBadSalt(t *testing.T) {
	_, err := HashPasswordWithSalt("pw", make([]byte, 16))
	assert.Error(t, err)
}

func TestHashPassword_RejectsEmptyAndHuge(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_CorruptHash(t *testing.T) {
	valid, err := HashPassword("pw")
	require.NoError(t, err)
	parts := strings.Split(valid, "$")

	tests := map[string]string{
		"empty":            "",
		"plain text":       "not-a-hash",
		"wrong algorithm":  strings.Replace(valid, "argon2id", "argon2i", 1),
		"wrong version":    strings.Replace(valid, "v=19", "v=16", 1),
		"bad params":       strings.Replace(valid, "m=65536,t=3,p=4", "m=x", 1),
		"zero cost":        strings.Replace(valid, "t=3", "t=0", 1),
		"bad salt base64":  strings.Join([]string{"", parts[1], parts[2], parts[3], "!!!", parts[5]}, "$"),
		"bad hash base64":  strings.Join([]string{"", parts[1], parts[2], parts[3], parts[4], "!!!"}, "$"),
		"too many fields":  valid + "$extra",
		"missing leading$": strings.TrimPrefix(valid, "$"),
	}

	for name, stored := range tests {
		t.Run(name, func(t *testing.T) {
			ok, err := VerifyPassword(stored, "pw")
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrCorruptCredential)
		})
	}
}

func TestVerifyPassword_OversizedCandidateIsMismatch(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, strings.Repeat("a", maxPasswordLength+1))
	assert.NoError(t, err)
	assert.False(t, ok)
}
