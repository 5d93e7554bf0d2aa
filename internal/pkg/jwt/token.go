package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails parsing or validation
var ErrInvalidToken = errors.New("invalid token")

// Claims represents standard JWT claims plus the login flow fields
type Claims struct {
	Username string `json:"username"`
	Stage    string `json:"stage"`
	jwt.RegisteredClaims
}

// Signer issues and validates HS256 tokens for one issuer
type Signer struct {
	secret []byte
	issuer string
}

// NewSigner creates a token signer
func NewSigner(secret []byte, issuer string) *Signer {
	return &Signer{
		secret: secret,
		issuer: issuer,
	}
}

// GenerateToken generates a signed token for username valid for ttl from now
func (s *Signer) GenerateToken(username, stage string, now time.Time, ttl time.Duration) (string, *Claims, error) {
	claims := &Claims{
		Username: username,
		Stage:    stage,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// ValidateToken parses a token, checks signature, expiry against now and issuer and returns its claims
func (s *Signer) ValidateToken(tokenString string, now time.Time) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	if !claims.VerifyNotBefore(now, false) {
		return nil, fmt.Errorf("%w: token is not valid yet", ErrInvalidToken)
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}

	if claims.Username == "" || claims.Username != claims.Subject {
		return nil, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	return claims, nil
}
