package utils

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"playtube-backend/config"
	"playtube-backend/models"
)

type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	jwt.RegisteredClaims
}

// RefreshTokenStore persists the single active refresh token per user.
type RefreshTokenStore interface {
	SaveRefreshToken(ctx context.Context, userID bson.ObjectID, token string) error
}

type TokenManager struct {
	cfg   *config.Config
	store RefreshTokenStore
}

func NewTokenManager(cfg *config.Config, store RefreshTokenStore) *TokenManager {
	return &TokenManager{cfg: cfg, store: store}
}

// IssueTokenPair signs a fresh access/refresh pair and overwrites the
// user's stored refresh token. The overwrite is what makes a previously
// issued refresh token unusable.
func (m *TokenManager) IssueTokenPair(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, err := m.signAccess(user)
	if err != nil {
		return "", "", NewApiError(http.StatusBadRequest, "something went wrong while generating tokens")
	}

	refreshToken, err := m.signRefresh(user.ID)
	if err != nil {
		return "", "", NewApiError(http.StatusBadRequest, "something went wrong while generating tokens")
	}

	if err := m.store.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return "", "", NewApiError(http.StatusBadRequest, "something went wrong while generating tokens")
	}

	return accessToken, refreshToken, nil
}

func (m *TokenManager) VerifyAccess(tokenStr string) (*Claims, error) {
	return verify(tokenStr, m.cfg.AccessTokenSecret)
}

func (m *TokenManager) VerifyRefresh(tokenStr string) (*Claims, error) {
	return verify(tokenStr, m.cfg.RefreshTokenSecret)
}

// IsExpired reports whether a verification failure was caused by expiry,
// as opposed to a malformed or badly signed token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

func (m *TokenManager) signAccess(user *models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.cfg.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.AccessTokenSecret))
}

func (m *TokenManager) signRefresh(userID bson.ObjectID) (string, error) {
	claims := Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.cfg.RefreshTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.RefreshTokenSecret))
}

func verify(tokenStr string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return token.Claims.(*Claims), nil
}
