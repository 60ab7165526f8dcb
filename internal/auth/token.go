package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"mealmaster.app/planner/internal/exceptions"
)

type TokenIssuer interface {
	Issue(userId string, ttl time.Duration) (string, error)
	Verify(token string) (Identity, error)
}

type Claims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	Secret []byte
	Now    func() time.Time
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{
		Secret: []byte(secret),
		Now:    time.Now,
	}
}

func (ji *JWTIssuer) Issue(userId string, ttl time.Duration) (string, error) {
	now := ji.Now()
	claims := Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ji.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify rejects tokens that never expire as well as expired ones.
func (ji *JWTIssuer) Verify(token string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ji.Secret, nil
	}, jwt.WithTimeFunc(ji.Now))
	if err != nil || !parsed.Valid || claims.UserId == "" || claims.ExpiresAt == nil {
		return Identity{}, exceptions.Unauthenticated("Token is not valid")
	}
	return Identity{UserId: claims.UserId}, nil
}
