// Package pswd implements salted PBKDF2-SHA512 hashing for user passwords
// and phew secrets. Hashes and salts travel as hex strings so they can be
// stored in plain text columns.
package pswd

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 1000
	keyLength  = 64
	saltBytes  = 16
)

// Hashed is a derived password hash together with the salt it was
// derived with.
type Hashed struct {
	Hash string
	Salt string
}

// Hash derives a key from password with a freshly generated random salt.
func Hash(password string) (Hashed, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return Hashed{}, fmt.Errorf("generate salt: %w", err)
	}
	return HashWithSalt(password, hex.EncodeToString(salt))
}

// HashWithSalt derives a key from password with the given hex-encoded salt.
// The same password and salt always produce the same hash.
func HashWithSalt(password, salt string) (Hashed, error) {
	if salt == "" {
		return Hashed{}, fmt.Errorf("generate salt first")
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return Hashed{
		Hash: hex.EncodeToString(key),
		Salt: salt,
	}, nil
}

// Compare reports whether password, hashed with salt, matches hashFromDB.
func Compare(password, salt, hashFromDB string) (bool, error) {
	hashed, err := HashWithSalt(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(hashed.Hash), []byte(hashFromDB)) == 1, nil
}
