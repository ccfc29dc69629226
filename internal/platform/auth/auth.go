package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is a server-issued authorization role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleArtisan    Role = "artisan"
	RoleWholesaler Role = "wholesaler"
	RoleCustomer   Role = "customer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleArtisan, RoleWholesaler, RoleCustomer:
		return true
	}
	return false
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownRole  = errors.New("unknown role")
)

// Claims are the signed claims carried by a role token.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies role tokens with a shared HMAC key.
type Issuer struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewIssuer creates an Issuer for the given key and issuer name.
func NewIssuer(key, issuer string) *Issuer {
	return &Issuer{key: []byte(key), issuer: issuer, now: time.Now}
}

// Issue mints a token for subject with role, valid for ttl.
func (i *Issuer) Issue(subject string, role Role, ttl time.Duration) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	now := i.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims. Tokens signed with another
// algorithm or key, expired tokens, and unknown roles are rejected.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var claims Claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Issuer != i.issuer {
		return Claims{}, fmt.Errorf("%w: issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if !claims.Role.Valid() {
		return Claims{}, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	return claims, nil
}
