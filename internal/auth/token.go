package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/menu-service/internal/domain"
)

// Decode failure classes. ErrTokenExpired means the signature verified but
// the clock is past expiry; every other failure is ErrTokenMalformed. The
// two produce different user-facing messages.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// resetTokenTTL is fixed; reset tokens are deliberately short-lived.
const resetTokenTTL = time.Hour

// TokenManager issues and validates signed claim sets. The signing secret
// is injected at construction and never read from the environment here.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, sessionTTL time.Duration) *TokenManager {
	if sessionTTL <= 0 {
		sessionTTL = 168 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), sessionTTL: sessionTTL}
}

// Claims describes the JWT payload. Role is omitted on password-reset
// tokens: redemption re-resolves the account, so only identity matters.
type Claims struct {
	Role domain.Role      `json:"role,omitempty"`
	Kind domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// IssueSession builds and signs a session token for the user.
func (tm *TokenManager) IssueSession(user *domain.User) (string, time.Time, error) {
	return tm.sign(&Claims{
		Role: user.Role,
		Kind: domain.TokenKindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueReset builds and signs a one-hour password-reset token for the user.
func (tm *TokenManager) IssueReset(user *domain.User) (string, time.Time, error) {
	return tm.sign(&Claims{
		Kind: domain.TokenKindPasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(resetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (tm *TokenManager) sign(claims *Claims) (string, time.Time, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Parse validates the signature, shape and expiry, and returns claims with
// a vetted role and kind. Failures collapse to ErrTokenExpired or
// ErrTokenMalformed.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	if _, err := domain.ParseTokenKind(string(claims.Kind)); err != nil {
		return nil, ErrTokenMalformed
	}
	if claims.Role != "" {
		if _, err := domain.ParseRole(string(claims.Role)); err != nil {
			return nil, ErrTokenMalformed
		}
	}
	return claims, nil
}
