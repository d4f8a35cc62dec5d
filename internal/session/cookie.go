package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The session cookie carries only the session id, signed so a forged id is
// rejected before the store is consulted. The CRM bearer token itself never
// leaves the server.

// EncodeCookie signs a session id into a compact JWT for the cookie value.
func EncodeCookie(sessionID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sessionId": sessionID,
		"iss":       "propdesk-server",
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// DecodeCookie validates a cookie value and returns the session id.
func DecodeCookie(value string, secret []byte) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	sessionID, _ := claims["sessionId"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("missing session id claim")
	}
	return sessionID, nil
}
