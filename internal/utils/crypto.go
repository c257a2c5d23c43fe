package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrSealKeyLength = errors.New("ssn seal key must decode to 32 bytes")
	ErrSealedData    = errors.New("sealed ssn could not be opened")
)

// SSNSealer encrypts principal SSNs at rest and derives a keyed
// fingerprint used for equality lookups without decrypting.
type SSNSealer struct {
	key [32]byte
}

// NewSSNSealer accepts a base64 encoded 32 byte key. An empty key yields a
// random one, which is only useful for tests and throwaway databases.
func NewSSNSealer(encodedKey string) (*SSNSealer, error) {
	s := &SSNSealer{}
	if encodedKey == "" {
		if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
			return nil, err
		}
		return s, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil || len(raw) != len(s.key) {
		return nil, ErrSealKeyLength
	}
	copy(s.key[:], raw)
	return s, nil
}

// Seal returns nonce||ciphertext for the normalized SSN.
func (s *SSNSealer) Seal(ssn string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(ssn), &nonce, &s.key), nil
}

func (s *SSNSealer) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrSealedData
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSealedData
	}
	return string(out), nil
}

// Fingerprint is a keyed BLAKE2b-256 digest of the normalized SSN.
func (s *SSNSealer) Fingerprint(ssn string) string {
	h, err := blake2b.New256(s.key[:])
	if err != nil {
		// only fails for keys longer than 64 bytes
		panic(err)
	}
	h.Write([]byte(ssn))
	return hex.EncodeToString(h.Sum(nil))
}

// Last4 returns the trailing four digits kept in clear for display.
func Last4(ssn string) string {
	digits := make([]byte, 0, len(ssn))
	for i := 0; i < len(ssn); i++ {
		if ssn[i] >= '0' && ssn[i] <= '9' {
			digits = append(digits, ssn[i])
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
