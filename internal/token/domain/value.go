package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Token value wire format (the kiosk QR payload and the stored value):
//
//	kiosk:check_in:<unix-ms>:<6-digit code>:<random suffix>
//	kiosk:check_out:<unix-ms>:<6-digit code>:<random suffix>
//	re_entry:<unix-ms>:<6-digit code>:<random suffix>
//	admin_reentry:<unix-ms>:<6-digit code>:<random suffix>
//
// The full value is the credential. The embedded 6-digit code is a
// human-readable fallback for manual entry when camera scanning is
// unavailable; it is resolved back to the full stored value server-side and
// never authorizes on its own.

const (
	valueSeparator = ":"

	kioskPrefix        = "kiosk"
	reentryPrefix      = "re_entry"
	adminReentryPrefix = "admin_reentry"

	kioskDirectionIn  = "check_in"
	kioskDirectionOut = "check_out"

	// FallbackCodeLength is the number of digits in the manual entry code.
	FallbackCodeLength = 6
)

// Payload is a scanned token value decoded and validated at the boundary.
// Consumers must treat the raw value as opaque beyond what Payload exposes.
type Payload struct {
	Kind     Kind
	IssuedAt time.Time
	Code     string
	Raw      string
}

// EncodeValue builds the wire value for a token of the given kind.
func EncodeValue(kind Kind, issuedAt time.Time, code, suffix string) (string, error) {
	ms := strconv.FormatInt(issuedAt.UnixMilli(), 10)

	switch kind {
	case KindKioskCheckIn:
		return strings.Join([]string{kioskPrefix, kioskDirectionIn, ms, code, suffix}, valueSeparator), nil
	case KindKioskCheckOut:
		return strings.Join([]string{kioskPrefix, kioskDirectionOut, ms, code, suffix}, valueSeparator), nil
	case KindReentry:
		return strings.Join([]string{reentryPrefix, ms, code, suffix}, valueSeparator), nil
	case KindAdminReentry:
		return strings.Join([]string{adminReentryPrefix, ms, code, suffix}, valueSeparator), nil
	default:
		return "", fmt.Errorf("unknown token kind: %s", kind)
	}
}

// DecodeValue parses a scanned value into a tagged Payload, rejecting anything
// that is not a well-formed token of a known kind with ErrMalformedToken.
func DecodeValue(raw string) (*Payload, error) {
	parts := strings.Split(raw, valueSeparator)
	if len(parts) < 4 {
		return nil, ErrMalformedToken
	}

	var kind Kind
	var msPart, codePart string

	switch parts[0] {
	case kioskPrefix:
		if len(parts) != 5 {
			return nil, ErrMalformedToken
		}
		switch parts[1] {
		case kioskDirectionIn:
			kind = KindKioskCheckIn
		case kioskDirectionOut:
			kind = KindKioskCheckOut
		default:
			return nil, ErrMalformedToken
		}
		msPart, codePart = parts[2], parts[3]
	case reentryPrefix, adminReentryPrefix:
		if len(parts) != 4 {
			return nil, ErrMalformedToken
		}
		kind = KindReentry
		if parts[0] == adminReentryPrefix {
			kind = KindAdminReentry
		}
		msPart, codePart = parts[1], parts[2]
	default:
		return nil, ErrMalformedToken
	}

	ms, err := strconv.ParseInt(msPart, 10, 64)
	if err != nil {
		return nil, ErrMalformedToken
	}

	if !validFallbackCode(codePart) {
		return nil, ErrMalformedToken
	}

	return &Payload{
		Kind:     kind,
		IssuedAt: time.UnixMilli(ms).UTC(),
		Code:     codePart,
		Raw:      raw,
	}, nil
}

// FallbackCode extracts the embedded manual entry digits from a token value.
// Returns false for values that do not carry a well-formed code.
func FallbackCode(value string) (string, bool) {
	payload, err := DecodeValue(value)
	if err != nil {
		return "", false
	}
	return payload.Code, true
}

// validFallbackCode reports whether s is exactly FallbackCodeLength digits.
func validFallbackCode(s string) bool {
	if len(s) != FallbackCodeLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
