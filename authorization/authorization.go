package authorization

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"
)

var (
	jwtKey      = []byte(os.Getenv("SECRET_KEY"))
	verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)
)

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse([]byte(tokenString), verifier)
}

func tokenFromRequest(r *http.Request) (string, error) {
	bearer := r.Header.Get("Authorization")
	if bearer == "" {
		return "", errors.New("missing authorization header")
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return "", errors.New("invalid token format")
	}
	return bearerToken[1], nil
}

func claimsFromRequest(r *http.Request) (map[string]string, error) {
	tokenString, err := tokenFromRequest(r)
	if err != nil {
		return nil, err
	}

	token, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	var claims map[string]string
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return nil, err
	}
	if tokenExpired(claims) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

// tokenExpired reports whether the expires_at claim is missing, unreadable
// or in the past. A token without an expiry never authenticates.
func tokenExpired(claims map[string]string) bool {
	expiresAt, ok := claims["expires_at"]
	if !ok {
		return true
	}
	expiry, err := time.Parse(time.RFC3339, expiresAt)
	return err != nil || time.Now().After(expiry)
}

// UserIDFromRequest resolves the authenticated user from the bearer token.
func UserIDFromRequest(r *http.Request) (string, error) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		return "", err
	}

	userID, ok := claims["user_id"]
	if !ok || userID == "" {
		return "", errors.New("token carries no user id")
	}
	return userID, nil
}

// RoleFromRequest returns the caller's role, "Unauthenticated" when no
// token is present.
func RoleFromRequest(r *http.Request) (string, error) {
	if r.Header.Get("Authorization") == "" {
		return "Unauthenticated", nil
	}

	claims, err := claimsFromRequest(r)
	if err != nil {
		return "", err
	}
	return claims["userType"], nil
}
