// Package main generates the Ed25519 key pair the server signs access tokens with.
//
// Usage:
//
//	go run ./cmd/keygen
//	go run ./cmd/keygen --private-key ./private.key --public-key ./public.key --force
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/vaultofgames/vault-server/internal/auth"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataPath := filepath.Join(home, "VaultOfGames")

	privatePath := flag.String("private-key", filepath.Join(dataPath, "private.key"), "Where to write the private key")
	publicPath := flag.String("public-key", filepath.Join(dataPath, "public.key"), "Where to write the public key")
	force := flag.Bool("force", false, "Overwrite existing key files")
	flag.Parse()

	if !*force {
		for _, p := range []string{*privatePath, *publicPath} {
			if _, err := os.Stat(p); err == nil {
				log.Fatalf("%s already exists; pass --force to replace it (existing tokens stop verifying)", p)
			} else if !errors.Is(err, os.ErrNotExist) {
				log.Fatalf("Failed to check %s: %v", p, err)
			}
		}
	}

	keys, err := auth.GenerateKeyPair()
	if err != nil {
		log.Fatalf("Failed to generate key pair: %v", err)
	}
	if err := keys.WriteFiles(*privatePath, *publicPath); err != nil {
		log.Fatalf("Failed to write key pair: %v", err)
	}

	fmt.Printf("Private key: %s\n", *privatePath)
	fmt.Printf("Public key:  %s\n", *publicPath)
}
