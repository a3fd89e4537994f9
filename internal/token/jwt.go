package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/model"
)

const typeAccess = "access"

// Claims represents access token claims. Subject holds the identity ID.
type Claims struct {
	jwt.RegisteredClaims
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"typ"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by HS256.
type JWT struct {
	secretKey []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWT creates a token manager signing with secretKey.
func NewJWT(secretKey, issuer string, accessTTL time.Duration) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// AccessTTL returns the lifetime of issued access tokens.
func (j *JWT) AccessTTL() time.Duration {
	return j.accessTTL
}

// GenerateAccessToken creates a short-lived access token carrying the
// principal's role snapshot.
func (j *JWT) GenerateAccessToken(p model.Principal) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.accessTTL)

	roles := p.Roles
	if roles == nil {
		roles = []string{}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.UserID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:     p.Email,
		Roles:     roles,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ParseAccessToken verifies signature, issuer and expiry and decodes the
// principal. Expired tokens fail with model.ErrTokenExpired, everything
// else with model.ErrTokenInvalid.
func (j *JWT) ParseAccessToken(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Principal{}, fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
		}
		return model.Principal{}, fmt.Errorf("%w: %w", model.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return model.Principal{}, model.ErrTokenInvalid
	}
	if claims.TokenType != typeAccess {
		return model.Principal{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrTokenInvalid, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return model.Principal{}, fmt.Errorf("%w: bad subject", model.ErrTokenInvalid)
	}

	return model.Principal{
		UserID: userID,
		Email:  claims.Email,
		Roles:  claims.Roles,
	}, nil
}
