// Package cryptids generates random identifiers and secrets.
package cryptids

import (
	"crypto/rand"
	"fmt"
)

var (
	IDAlphabet = "bcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ0123456789"
	IDLength   = 18

	TokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
	TokenLength   = 43
)

// GenerateID creates a short random string from the default alphabet.
func GenerateID() (string, error) {
	return generate(IDAlphabet, IDLength)
}

// GenerateToken creates a URL-safe secret suitable for verification links.
func GenerateToken() (string, error) {
	return generate(TokenAlphabet, TokenLength)
}

// GenerateCustomID creates a random string with the given alphabet and length.
func GenerateCustomID(alphabet string, size int) (string, error) {
	return generate(alphabet, size)
}

func generate(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return "", fmt.Errorf("alphabet must contain between 2 and 256 characters")
	}
	if size < 1 {
		return "", fmt.Errorf("size must be at least 1")
	}

	// Smallest 2^n-1 mask covering the alphabet; bytes outside it are rejected
	// so every character stays equally likely.
	mask := 1
	for mask < len(alphabet)-1 {
		mask = (mask << 1) | 1
	}

	step := size * 8 / 5
	if step < size {
		step = size
	}

	id := make([]byte, size)
	buf := make([]byte, step)

	n := 0
	for n < size {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := 0; i < len(buf) && n < size; i++ {
			idx := int(buf[i]) & mask
			if idx >= len(alphabet) {
				continue
			}
			id[n] = alphabet[idx]
			n++
		}
	}

	return string(id), nil
}
