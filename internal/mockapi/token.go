package mockapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

var (
	errTokenExpired = errors.New("session expired")
	errTokenInvalid = errors.New("invalid session token")
)

// claims carries the user id the same way the real backend's auth_token does.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func generateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

func userIDFromToken(tokenString string, secretKey []byte) (string, error) {
	c := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", errTokenExpired
	}
	if err != nil || !token.Valid || c.UserID == "" {
		return "", errTokenInvalid
	}

	return c.UserID, nil
}
