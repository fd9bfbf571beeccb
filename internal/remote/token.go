package remote

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("no session token")
	ErrSessionExpired = errors.New("session token expired")
	ErrInvalidSession = errors.New("invalid session token")
)

// anonymousUser is the identity recorded on cloud documents when the session
// token carries no subject.
const anonymousUser = "anonymous"

// sessionSubject extracts the user identity from a session token and checks
// its expiry. The signature is verified by the cloud service on every call;
// the client only needs to know whether the session is still worth sending.
func sessionSubject(token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrInvalidSession
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return "", ErrSessionExpired
	}

	if claims.Subject == "" {
		return anonymousUser, nil
	}
	return claims.Subject, nil
}
