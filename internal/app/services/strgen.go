package services

import (
	"crypto/rand"
)

// URL-safe slug alphabet, 64 characters
const slugAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// RandStringGenerator
type RandStringGenerator interface {
	Call(n int) (string, error)
}

// StdRandStringGenerator
type StdRandStringGenerator struct{}

// Call returns a random URL-safe string of length n
func (randGen StdRandStringGenerator) Call(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = slugAlphabet[int(bytes[i])%len(slugAlphabet)]
	}

	return string(bytes), nil
}
