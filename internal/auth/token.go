package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleSupporter     = "supporter"
	RoleFacilityStaff = "facility_staff"
	RoleClient        = "client"
	RoleAdmin         = "admin"
)

// Claims are carried in every access token.
type Claims struct {
	UserID     int    `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role"`
	FacilityID *int   `json:"facility_id,omitempty"`
	jwt.RegisteredClaims
}

// ManagesFacility reports whether the holder may act on behalf of the facility.
func (c *Claims) ManagesFacility(facilityID int) bool {
	if c.Role == RoleAdmin {
		return true
	}
	return c.Role == RoleFacilityStaff && c.FacilityID != nil && *c.FacilityID == facilityID
}

func IssueToken(secret string, claims Claims, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret not set")
	}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}
