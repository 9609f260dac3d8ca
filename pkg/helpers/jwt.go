package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's signature checks out but
	// its validity window has elapsed. Kept separate from ErrTokenInvalid
	// for logging; handlers collapse both into one outward message.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTManager signs and verifies the two token kinds the auth flows use:
// bearer tokens carrying {uid, email} and activation-link tokens
// carrying only the user id.
type JWTManager struct {
	Secret        []byte
	BearerTTL     time.Duration
	ActivationTTL time.Duration
}

func NewJWTManager(secret string, bearerTTL, activationTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:        []byte(secret),
		BearerTTL:     bearerTTL,
		ActivationTTL: activationTTL,
	}
}

type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateBearerToken issues the token returned by every successful login path.
func (m *JWTManager) GenerateBearerToken(userID, email string) (string, time.Time, error) {
	return m.sign(userID, email, m.BearerTTL)
}

// GenerateActivationToken issues the token embedded in activation links.
func (m *JWTManager) GenerateActivationToken(userID string) (string, time.Time, error) {
	return m.sign(userID, "", m.ActivationTTL)
}

func (m *JWTManager) sign(userID, email string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ParseToken verifies signature and expiry. Expired tokens come back as
// ErrTokenExpired, everything else as ErrTokenInvalid.
func (m *JWTManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
