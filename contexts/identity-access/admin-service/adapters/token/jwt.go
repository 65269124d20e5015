package token

import (
	"errors"
	"time"

	"ovation/contexts/identity-access/admin-service/domain/entities"
	"ovation/contexts/identity-access/admin-service/ports"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 24 * time.Hour

// JWTCodec signs admin session tokens with HS256, matching the bearer-token
// contract of the management endpoints.
type JWTCodec struct {
	Secret []byte
}

func NewJWTCodec(secret string) JWTCodec {
	return JWTCodec{Secret: []byte(secret)}
}

func (c JWTCodec) Issue(admin entities.Admin, now time.Time) (string, error) {
	if len(c.Secret) == 0 {
		return "", errors.New("jwt secret is required")
	}
	claims := jwt.MapClaims{
		"sub":   admin.AdminID,
		"email": admin.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
}

func (c JWTCodec) Verify(tokenString string) (ports.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.Secret, nil
	})
	if err != nil || !token.Valid {
		return ports.SessionClaims{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.SessionClaims{}, errors.New("invalid claims")
	}
	adminID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if adminID == "" {
		return ports.SessionClaims{}, errors.New("missing subject")
	}
	return ports.SessionClaims{AdminID: adminID, Email: email}, nil
}
