// pkg/token/token.go
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	issuer = "scoutnet"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongType    = errors.New("token type mismatch")
)

// Claims defines the structure of the JWT claims the API issues.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a short-lived access token.
func GenerateJWT(userID uint, role, secretKey string, expiryMinutes int) (string, error) {
	return sign(userID, role, TypeAccess, secretKey, time.Duration(expiryMinutes)*time.Minute)
}

// GenerateRefreshToken issues a long-lived refresh token.
func GenerateRefreshToken(userID uint, role, secretKey string, expiryDays int) (string, error) {
	return sign(userID, role, TypeRefresh, secretKey, time.Duration(expiryDays)*24*time.Hour)
}

func sign(userID uint, role, tokenType, secretKey string, ttl time.Duration) (string, error) {
	if secretKey == "" {
		return "", errors.New("jwt secret key is empty")
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secretKey))
}

// ValidateJWT verifies an access token and returns its claims.
func ValidateJWT(tokenString, secretKey string) (*Claims, error) {
	return validate(tokenString, secretKey, TypeAccess)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func ValidateRefreshToken(tokenString, secretKey string) (*Claims, error) {
	return validate(tokenString, secretKey, TypeRefresh)
}

func validate(tokenString, secretKey, wantType string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: token string is empty", ErrInvalidToken)
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id claim is missing", ErrInvalidToken)
	}
	if claims.Type != wantType {
		return nil, ErrWrongType
	}
	return claims, nil
}
