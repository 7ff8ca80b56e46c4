package dto

import (
	"time"

	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// TokenResponse represents an issued token in API responses.
// The value and fallback code are only returned at issuance.
type TokenResponse struct {
	ID           string    `json:"id"`
	Value        string    `json:"value"`
	FallbackCode string    `json:"fallback_code"`
	Kind         string    `json:"kind"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MapTokenToResponse converts a domain token to an API response.
func MapTokenToResponse(token *tokenDomain.Token) TokenResponse {
	code, _ := tokenDomain.FallbackCode(token.Value)

	return TokenResponse{
		ID:           token.ID.String(),
		Value:        token.Value,
		FallbackCode: code,
		Kind:         string(token.Kind),
		ExpiresAt:    token.ExpiresAt,
	}
}
