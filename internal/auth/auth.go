package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"barberbook/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNotConfigured means no admin identity is present in the config; a
	// deployment problem, reported as a server fault.
	ErrNotConfigured = errors.New("admin credentials are not configured")

	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized covers every token failure: missing, malformed, wrong
	// key, wrong method, expired.
	ErrUnauthorized = errors.New("unauthorized")
)

// Gate verifies the single admin identity and issues signed session tokens.
// There is no server-side session state: validity is purely a function of
// signature and expiry, and logout is a client-side discard.
type Gate struct {
	admin  config.AdminConfig
	secret []byte
	ttl    time.Duration
}

func NewGate(admin config.AdminConfig, authCfg config.AuthConfig) *Gate {
	ttl := time.Duration(authCfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Gate{
		admin:  admin,
		secret: []byte(authCfg.JWTSecret),
		ttl:    ttl,
	}
}

// Login compares a trimmed, lowercased email and trimmed password against
// the configured admin identity and returns a signed token on match.
func (g *Gate) Login(email, password string) (string, error) {
	adminEmail := strings.ToLower(strings.TrimSpace(g.admin.Email))
	adminPassword := strings.TrimSpace(g.admin.Password)
	if adminEmail == "" || adminPassword == "" {
		return "", ErrNotConfigured
	}

	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1
	if !emailOK || !passwordOK {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role":  "admin",
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(g.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded admin email.
func (g *Gate) Verify(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrUnauthorized
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	return email, nil
}
