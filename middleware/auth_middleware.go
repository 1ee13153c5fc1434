package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"playtube-backend/config"
	"playtube-backend/dto"
	"playtube-backend/models"
	"playtube-backend/utils"
)

const currentUserKey = "currentUser"

// UserFinder loads users for the auth flow. FindUserByID strips both secret
// fields; FindUserWithRefreshToken keeps refreshToken so the gate can
// byte-match it against the incoming one.
type UserFinder interface {
	FindUserByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindUserWithRefreshToken(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// Auth validates the access token and, when it has merely expired, tries to
// mint a fresh pair from the refresh token. allowAnonymousRead marks a route
// as readable without credentials; requests carrying no tokens at all pass
// through unauthenticated.
func Auth(cfg *config.Config, tokens *utils.TokenManager, users UserFinder, allowAnonymousRead bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := extractAccessToken(c)
		refreshToken := extractRefreshToken(c)

		if accessToken == "" && refreshToken == "" {
			if allowAnonymousRead && c.Request.Method == http.MethodGet {
				c.Next()
				return
			}
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user not logged in"))
			return
		}

		if accessToken == "" {
			refreshAndContinue(c, cfg, tokens, users, refreshToken)
			return
		}

		claims, err := tokens.VerifyAccess(accessToken)
		if err == nil {
			userID, idErr := bson.ObjectIDFromHex(claims.UserID)
			if idErr != nil {
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "invalid access token"))
				return
			}
			user, loadErr := users.FindUserByID(c.Request.Context(), userID)
			if loadErr != nil {
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "invalid access token"))
				return
			}
			attachUser(c, user)
			c.Next()
			return
		}

		if !utils.IsExpired(err) {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "invalid access token"))
			return
		}

		refreshAndContinue(c, cfg, tokens, users, refreshToken)
	}
}

func refreshAndContinue(c *gin.Context, cfg *config.Config, tokens *utils.TokenManager, users UserFinder, refreshToken string) {
	claims, err := tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if utils.IsExpired(err) {
			clearAuthCookies(c, cfg)
		}
		utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "token invalid or expired"))
		return
	}

	userID, err := bson.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "invalid refresh token"))
		return
	}

	user, err := users.FindUserWithRefreshToken(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "invalid refresh token"))
		return
	}

	// Reuse detection: the stored token is the only one ever issued last.
	if user.RefreshToken != refreshToken {
		utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "refresh token used or expired"))
		return
	}

	newAccess, newRefresh, err := tokens.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	SetAuthCookies(c, cfg, newAccess, newRefresh)
	user.RefreshToken = ""
	attachUser(c, user)
	c.Next()
}

func SetAuthCookies(c *gin.Context, cfg *config.Config, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, int(cfg.AccessTokenTTL.Seconds()), "/", cfg.CookieDomain, cfg.CookieSecure, true)
	c.SetCookie("refreshToken", refreshToken, int(cfg.RefreshTokenTTL.Seconds()), "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

func ClearAuthCookies(c *gin.Context, cfg *config.Config) {
	clearAuthCookies(c, cfg)
}

func clearAuthCookies(c *gin.Context, cfg *config.Config) {
	c.SetCookie("accessToken", "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
	c.SetCookie("refreshToken", "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// CurrentUser returns the authenticated identity, or nil on anonymous-read
// requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func attachUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func extractRefreshToken(c *gin.Context) string {
	if cookie, err := c.Cookie("refreshToken"); err == nil && cookie != "" {
		return cookie
	}
	return refreshTokenFromBody(c)
}

// refreshTokenFromBody peeks a JSON body for a refreshToken field and puts
// the body back so the handler can still bind it.
func refreshTokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil {
		return ""
	}
	var body dto.RefreshDTO
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.RefreshToken
}
