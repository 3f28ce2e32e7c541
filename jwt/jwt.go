package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"summercamp-backend/log"
)

const (
	issuer     = "summer-champ"
	DefaultTTL = time.Hour
)

var (
	ErrExpired      = errors.New("token expired")
	ErrMissingEmail = errors.New("token has no email claim")
)

type AccessClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWT struct {
	key []byte
	ttl time.Duration
}

func New(key []byte, ttl time.Duration) *JWT {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &JWT{key: key, ttl: ttl}
}

func (j *JWT) NewAccessToken(email, name string) (string, error) {
	return j.GenerateToken(email, name, time.Now().Add(j.ttl))
}

// GenerateToken signs a token for email that expires at exp.
func (j *JWT) GenerateToken(email, name string, exp time.Time) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &AccessClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	})

	ss, err := token.SignedString(j.key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func (j *JWT) ValidateAccessToken(token string) (*AccessClaims, error) {
	t, err := jwt.ParseWithClaims(token, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		log.Logger.Debug("parse failure", zap.Error(err))
		return nil, err
	}

	c, ok := t.Claims.(*AccessClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	if c.Email == "" {
		return nil, ErrMissingEmail
	}

	return c, nil
}

type ctxKey struct{}

func WithClaims(ctx context.Context, c *AccessClaims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func GetClaimsFromCtx(ctx context.Context) (*AccessClaims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*AccessClaims)
	return c, ok
}
