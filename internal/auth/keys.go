// Package auth provides password hashing and signed access tokens.
package auth

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// KeyPair is the Ed25519 signing pair used for access tokens.
// It is loaded once at startup and never modified.
type KeyPair struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// Private returns the signing key.
func (k *KeyPair) Private() ed25519.PrivateKey { return k.private }

// Public returns the verification key.
func (k *KeyPair) Public() ed25519.PublicKey { return k.public }

// NewKeyPair validates a private/public pair and wraps it.
func NewKeyPair(private ed25519.PrivateKey, public ed25519.PublicKey) (*KeyPair, error) {
	if len(private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(private))
	}
	if len(public) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(public))
	}

	derived, ok := private.Public().(ed25519.PublicKey)
	if !ok || !bytes.Equal(derived, public) {
		return nil, fmt.Errorf("public key does not belong to private key")
	}

	return &KeyPair{
		private: bytes.Clone(private),
		public:  bytes.Clone(public),
	}, nil
}

// GenerateKeyPair creates a fresh random pair.
func GenerateKeyPair() (*KeyPair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return &KeyPair{private: private, public: public}, nil
}

// LoadKeyPair reads the private and public key files. Each file holds either
// the raw key bytes or their hex encoding.
// Any problem is fatal to startup; there is no fallback key.
func LoadKeyPair(privatePath, publicPath string) (*KeyPair, error) {
	private, err := readKeyFile(privatePath, ed25519.PrivateKeySize)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}

	public, err := readKeyFile(publicPath, ed25519.PublicKeySize)
	if err != nil {
		return nil, fmt.Errorf("load public key: %w", err)
	}

	return NewKeyPair(private, public)
}

// WriteFiles stores the pair hex-encoded. The private key is readable only by
// its owner.
func (k *KeyPair) WriteFiles(privatePath, publicPath string) error {
	for _, p := range []string{privatePath, publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}

	if err := os.WriteFile(privatePath, []byte(hex.EncodeToString(k.private)), 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, []byte(hex.EncodeToString(k.public)), 0o644); err != nil { //nolint:gosec // public key
		return fmt.Errorf("write public key: %w", err)
	}
	return nil
}

func readKeyFile(path string, size int) ([]byte, error) {
	//#nosec G304 -- key path comes from configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(raw) == size {
		return raw, nil
	}

	text := bytes.TrimSpace(raw)
	if len(text) != size*2 {
		return nil, fmt.Errorf("%s: expected %d raw bytes or %d hex characters, got %d bytes", path, size, size*2, len(raw))
	}

	key := make([]byte, size)
	if _, err := hex.Decode(key, text); err != nil {
		return nil, fmt.Errorf("%s: invalid hex: %w", path, err)
	}
	return key, nil
}
