package newsportal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

// Claims identify the caller of an authenticated request.
type Claims struct {
	AccountID int
	Email     string
	Role      Role
}

// Tokens issues and verifies HS256 signed JWTs.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret, issuer string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(c Claims) (string, time.Time, error) {
	expiresAt := t.now().Add(t.ttl)
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(c.AccountID),
		"email": c.Email,
		"role":  int(c.Role),
		"iss":   t.issuer,
		"exp":   expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Parse verifies signature, issuer and expiry. Any failure wraps ErrInvalidToken.
func (t *Tokens) Parse(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad sub claim", ErrInvalidToken)
	}

	role, ok := claims["role"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)

	return Claims{
		AccountID: id,
		Email:     email,
		Role:      Role(role),
	}, nil
}
