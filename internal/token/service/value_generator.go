package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	apperrors "github.com/clinichq/attend/internal/errors"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// suffixLength is the number of random characters appended to every token value.
const suffixLength = 16

// suffixAlphabet is lowercase base32 (no padding characters, QR-friendly).
const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz234567"

// valueGenerator implements ValueGenerator with crypto/rand for both the
// numeric fallback code and the random suffix.
type valueGenerator struct{}

// NewValueGenerator creates a new ValueGenerator.
func NewValueGenerator() ValueGenerator {
	return &valueGenerator{}
}

// NewValue builds a fresh wire value for a token of the given kind.
func (g *valueGenerator) NewValue(kind tokenDomain.Kind, issuedAt time.Time) (string, error) {
	code, err := randomDigits(tokenDomain.FallbackCodeLength)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate fallback code")
	}

	suffix, err := randomSuffix(suffixLength)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate token suffix")
	}

	value, err := tokenDomain.EncodeValue(kind, issuedAt, code, suffix)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode token value")
	}

	return value, nil
}

// randomDigits generates a cryptographically secure random numeric string.
func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		//nolint:gosec // n is bounded [0,9] by big.NewInt(10), safe conversion
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// randomSuffix generates a cryptographically secure random base32 string.
func randomSuffix(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(suffixAlphabet)))
	chars := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		chars[i] = suffixAlphabet[n.Int64()]
	}
	return string(chars), nil
}
