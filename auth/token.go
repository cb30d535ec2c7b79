package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"water-delivery-core/models"
)

type sessionClaims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
	jwt.RegisteredClaims
}

// signSession encodes the reduced identity as a signed token for the
// persisted current-session value. No expiry: the session lives until logout.
func signSession(identity models.Identity, secret []byte) (string, error) {
	claims := sessionClaims{
		UserID:   identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
		Name:     identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseSession(tokenStr string, secret []byte) (models.Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return models.Identity{}, err
	}
	if !token.Valid {
		return models.Identity{}, jwt.ErrTokenUnverifiable
	}
	return models.Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Name:     claims.Name,
	}, nil
}
