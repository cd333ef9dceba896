package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Memory      = 64 * 1024
	argon2Iterations  = 3
	argon2Parallelism = 4
	argon2KeyLength   = 32

	// SaltLength is the size of the random salt drawn for every hash.
	SaltLength = 32

	// Caps the work an attacker can force per request.
	maxPasswordLength = 1024
)

// ErrCorruptCredential means a stored hash could not be parsed. It is a server
// fault, not a failed login.
var ErrCorruptCredential = errors.New("corrupt credential record")

// HashPassword hashes password with argon2id and a fresh random salt.
// The result is a self-describing PHC string.
func HashPassword(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}

	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	return HashPasswordWithSalt(password, salt)
}

// HashPasswordWithSalt is HashPassword with a caller-supplied salt.
func HashPasswordWithSalt(password string, salt []byte) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	if len(salt) != SaltLength {
		return "", fmt.Errorf("salt must be %d bytes, got %d", SaltLength, len(salt))
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Iterations, argon2Memory, argon2Parallelism, argon2KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Iterations,
		argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword reports whether password matches encodedHash.
// A mismatch is (false, nil). A hash that cannot be decoded returns an error
// wrapping ErrCorruptCredential.
func VerifyPassword(encodedHash, password string) (bool, error) {
	salt, hash, params, err := decodeHash(encodedHash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCorruptCredential, err)
	}

	if len(password) > maxPasswordLength {
		return false, nil
	}

	candidate := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, params.keyLength)

	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}

func checkPassword(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return errors.New("password exceeds maximum length")
	}
	return nil
}

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	keyLength   uint32
}

func decodeHash(encodedHash string) (salt, hash []byte, params *argon2Params, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, nil, errors.New("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params = &argon2Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.memory == 0 || params.iterations == 0 || params.parallelism == 0 {
		return nil, nil, nil, errors.New("invalid parameters: zero cost")
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	if hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(salt) == 0 || len(hash) == 0 {
		return nil, nil, nil, errors.New("invalid hash format: empty salt or hash")
	}

	//nolint:gosec // hash length is bounded by the stored string
	params.keyLength = uint32(len(hash))

	return salt, hash, params, nil
}
