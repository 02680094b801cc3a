package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userKey = "username"

// SignToken issues an HS256 token for one user, good for 24h.
func SignToken(secret, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
		"iss": "smartfield",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func parseToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("no claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("no subject")
	}
	return sub, nil
}

// JWT validates the bearer token and stores the username on the context.
// With required=false (dev mode) missing tokens pass through anonymously.
func JWT(secret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				if required {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				}
				return next(c)
			}
			username, err := parseToken(secret, strings.TrimPrefix(authz, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set(userKey, username)
			return next(c)
		}
	}
}

// Actor returns the authenticated username, or nil for anonymous requests.
func Actor(c echo.Context) *string {
	if v, ok := c.Get(userKey).(string); ok && v != "" {
		return &v
	}
	return nil
}
