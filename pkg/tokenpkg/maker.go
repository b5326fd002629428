// Package tokenpkg issues and verifies access tokens.
package tokenpkg

import (
	"fmt"
	"time"
)

// Supported token types.
const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username, role and duration.
	CreateToken(username, role string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the Maker of the given token type.
func New(tokenType, symmetricKey string) (Maker, error) {
	switch tokenType {
	case TypePaseto:
		return NewPasetoMaker(symmetricKey)
	case TypeJWT:
		return NewJWTMaker(symmetricKey)
	}

	return nil, fmt.Errorf("unsupported token type %q", tokenType)
}
