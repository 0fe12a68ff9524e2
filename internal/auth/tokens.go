package auth

import (
	"errors"
	"time"

	"sama/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "sama-api"
	tokenAudience = "sama-client"
)

// Tokens issues and validates signed bearer tokens. Validation is stateless;
// there is no server-side session store.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token service with the process-wide signing secret and
// token lifetime, both loaded from configuration at startup.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed, time-limited token whose subject is the username.
func (t *Tokens) Issue(username string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,               // Subject (username)
		"iss": tokenIssuer,            // Issuer
		"aud": tokenAudience,          // Audience
		"exp": now.Add(t.ttl).Unix(),  // Expiration
		"iat": now.Unix(),             // Issued at
		"nbf": now.Unix(),             // Not before
		"jti": uuid.New().String()[:8], // Token ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate verifies the token's signature and expiry and returns the subject.
// Malformed, expired, or mis-signed tokens fail with an Unauthorized AppError.
func (t *Tokens) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return "", models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return "", models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", models.NewUnauthorizedError("Invalid subject claim")
	}

	return sub, nil
}
