// Package cryptox derives the login credentials the client sends to the
// server. The password never leaves the client: it is stretched with
// Argon2id into a key, and only a SHA-256 verifier of that key is stored
// server-side and cached locally for offline unlock.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32
)

// MakeVerifier hashes a derived key into the value exchanged with the server.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey stretches password with salt using Argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// VerifierFor is DeriveMasterKey followed by MakeVerifier. The intermediate
// key is wiped before returning.
func VerifierFor(password, salt []byte) []byte {
	key := DeriveMasterKey(password, salt)
	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()
	return MakeVerifier(key)
}

// Equal compares two verifiers in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
