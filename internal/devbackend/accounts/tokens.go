package accounts

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pet-walks-client/internal/devbackend/middleware"
	"pet-walks-client/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims del bearer token.
type Claims struct {
	UserID int64       `json:"user_id"`
	RoleID auth.RoleID `json:"role_id"`
	jwt.RegisteredClaims
}

// Tokens firma y valida JWT HS256.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ middleware.Verifier = (*Tokens)(nil)

// NewTokens: secret vacío => se genera uno aleatorio (los tokens no sobreviven un reinicio).
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
	}
	return &Tokens{secret: key, ttl: ttl, now: time.Now}, nil
}

func (t *Tokens) Issue(u User) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID: u.ID,
		RoleID: u.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse valida firma y vencimiento.
func (t *Tokens) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID <= 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Verify implementa middleware.Verifier.
func (t *Tokens) Verify(_ context.Context, token string) (middleware.Identity, error) {
	c, err := t.Parse(token)
	if err != nil {
		return middleware.Identity{}, err
	}
	return middleware.Identity{UserID: c.UserID, RoleID: c.RoleID}, nil
}
