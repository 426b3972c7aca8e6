package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
)

const (
	tokenTTL    = 24 * time.Hour
	tokenIssuer = "threadly-api"

	// Principal type tags carried inside the token.
	TypeUser  = "user"
	TypeAdmin = "admin"
)

type Claims struct {
	UserID   uint   `json:"user_id,omitempty"`
	AdminID  uint   `json:"admin_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueUserToken signs a 24h customer token for u.
func IssueUserToken(u models.User) (string, error) {
	return signToken(Claims{
		UserID: u.ID,
		Email:  u.Email,
		Type:   TypeUser,
	}, tokenTTL)
}

// IssueAdminToken signs a 24h admin token for a.
func IssueAdminToken(a models.Admin) (string, error) {
	return signToken(Claims{
		AdminID:  a.ID,
		Username: a.Username,
		Type:     TypeAdmin,
	}, tokenTTL)
}

func signToken(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken verifies the signature and expiry of a bearer token and
// returns its claims. Failures come back as AuthenticationErrors with
// a message the client can act on.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Authentication("Your authentication token has expired. Please login again.")
		}
		return nil, apperrors.Authentication("The provided token is invalid.")
	}
	if !token.Valid {
		return nil, apperrors.Authentication("The provided token is invalid.")
	}
	return claims, nil
}
