package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadTicket = errors.New("missing or invalid game ticket")

// JWT signs game tickets: tokens that let their holder make moves in one
// game.
type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	TokenLifetime time.Duration
}

type GameClaims struct {
	Slug string `json:"slug"`
	jwt.RegisteredClaims
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("JWT_SECRET")
	if ok {
		return []byte(secret), nil
	}
	secretPath, ok := os.LookupEnv("JWT_SECRET_FILE")
	if !ok {
		return nil, fmt.Errorf("no JWT_SECRET or JWT_SECRET_FILE env variable set")
	}
	data, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT secret: %w", err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

// NewJWT loads the signing secret. In development a missing secret is
// replaced with a random one, so tickets do not survive a restart.
func NewJWT(development bool) (*JWT, error) {
	secret, err := loadSecret()
	if err != nil {
		if !development {
			return nil, err
		}
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate JWT secret: %w", err)
		}
	}
	return NewJWTWithSecret(secret), nil
}

func NewJWTWithSecret(secret []byte) *JWT {
	return &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		TokenLifetime: time.Hour * 24 * 30,
	}
}

func (j *JWT) Sign(slug string) (string, error) {
	now := time.Now()
	claims := &GameClaims{
		Slug: slug,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenLifetime)),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

// Verify checks that tokenString is a valid ticket for slug.
func (j *JWT) Verify(tokenString, slug string) error {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&GameClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadTicket, err)
	}
	claims, ok := token.Claims.(*GameClaims)
	if !ok || !token.Valid || claims.Slug != slug {
		return ErrBadTicket
	}
	return nil
}
