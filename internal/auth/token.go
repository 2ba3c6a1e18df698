package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceClaims authenticate a sensor device posting readings without a
// browser session.
type DeviceClaims struct {
	UserID uint `json:"user_id"`

	jwt.RegisteredClaims
}

const deviceTokenTTL = 24 * time.Hour

// MintDeviceToken issues an HS256 token a sensor device presents as a
// Bearer credential on the readings endpoints.
func MintDeviceToken(secret []byte, userID uint) (string, error) {
	claims := &DeviceClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(deviceTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseDeviceToken validates a device token and returns its claims.
func ParseDeviceToken(secret []byte, tokenString string) (*DeviceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DeviceClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*DeviceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid device token")
	}
	return claims, nil
}
