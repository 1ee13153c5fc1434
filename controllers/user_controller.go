package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"playtube-backend/database"
	"playtube-backend/dto"
	"playtube-backend/middleware"
	"playtube-backend/models"
	"playtube-backend/storage"
	"playtube-backend/utils"
)

// RegisterUser handles the multipart registration form: required avatar,
// optional cover image, and the four text fields. Uploaded assets are
// destroyed again if the user document cannot be persisted.
func RegisterUser(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		var body dto.RegisterUserDTO
		if err := c.ShouldBind(&body); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		avatarFile, _ := c.FormFile("avatar")
		coverFile, _ := c.FormFile("coverImage")

		var avatarPath, coverPath string
		if avatarFile != nil {
			path, err := storage.SaveTemp(c, avatarFile)
			if err != nil {
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "failed to read avatar"))
				return
			}
			avatarPath = path
		}
		if coverFile != nil {
			path, err := storage.SaveTemp(c, coverFile)
			if err != nil {
				storage.RemoveTemp(avatarPath)
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "failed to read cover image"))
				return
			}
			coverPath = path
		}

		username := strings.ToLower(strings.TrimSpace(body.Username))
		email := strings.ToLower(strings.TrimSpace(body.Email))
		fullname := strings.TrimSpace(body.Fullname)

		if username == "" || email == "" || fullname == "" || strings.TrimSpace(body.Password) == "" {
			storage.RemoveTemp(avatarPath, coverPath)
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "all fields are mandatory"))
			return
		}

		if avatarPath == "" {
			storage.RemoveTemp(coverPath)
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "avatar file is required"))
			return
		}

		count, err := usersCol.CountDocuments(ctx, bson.M{
			"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}},
		})
		if err != nil {
			storage.RemoveTemp(avatarPath, coverPath)
			utils.RespondError(c, err)
			return
		}
		if count > 0 {
			storage.RemoveTemp(avatarPath, coverPath)
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user already exists"))
			return
		}

		avatar, err := app.Media.Upload(ctx, avatarPath, storage.UploadOptions{ResourceType: storage.ResourceImage})
		if err != nil {
			storage.RemoveTemp(coverPath)
			log.Printf("avatar upload: %v", err)
			utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "failed to upload avatar"))
			return
		}

		var cover *storage.UploadResult
		if coverPath != "" {
			cover, err = app.Media.Upload(ctx, coverPath, storage.UploadOptions{ResourceType: storage.ResourceImage})
			if err != nil {
				app.Media.Destroy(ctx, avatar.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceImage})
				log.Printf("cover image upload: %v", err)
				utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "failed to upload cover image"))
				return
			}
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "failed to hash password"))
			return
		}

		now := time.Now().UTC()
		user := models.User{
			ID:        bson.NewObjectID(),
			Username:  username,
			Email:     email,
			Fullname:  fullname,
			Avatar:    avatar.URL,
			Password:  hash,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if cover != nil {
			user.CoverImage = cover.URL
		}

		if _, err := usersCol.InsertOne(ctx, user); err != nil {
			// Compensate: the remote assets are orphans now.
			app.Media.Destroy(ctx, avatar.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceImage})
			if cover != nil {
				app.Media.Destroy(ctx, cover.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceImage})
			}
			if utils.IsDuplicateKey(err) {
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user already exists"))
				return
			}
			utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "something went wrong while registering a user"))
			return
		}

		created, err := app.Users.FindUserByID(ctx, user.ID)
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "something went wrong while registering a user"))
			return
		}

		utils.Respond(c, http.StatusCreated, created, "user registered successfully")
	}
}

func Login(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		var body dto.LoginDTO
		if err := c.ShouldBind(&body); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		username := strings.ToLower(strings.TrimSpace(body.Username))
		email := strings.ToLower(strings.TrimSpace(body.Email))
		if username == "" || email == "" || body.Password == "" {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "all fields are mandatory"))
			return
		}

		var user models.User
		err := usersCol.FindOne(ctx, bson.M{
			"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}},
		}).Decode(&user)
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user does not exist"))
			return
		}

		if err := utils.CheckPassword(user.Password, body.Password); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "incorrect password"))
			return
		}

		accessToken, refreshToken, err := app.Tokens.IssueTokenPair(ctx, &user)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		loggedIn, err := app.Users.FindUserByID(ctx, user.ID)
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user does not exist"))
			return
		}

		middleware.SetAuthCookies(c, app.Config, accessToken, refreshToken)
		utils.Respond(c, http.StatusOK, gin.H{
			"user":         loggedIn,
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		}, "user logged in successfully")
	}
}

func GetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, middleware.CurrentUser(c), "user fetched successfully")
	}
}

func LogoutUser(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		if err := app.Users.ClearRefreshToken(c.Request.Context(), user.ID); err != nil {
			utils.RespondError(c, err)
			return
		}

		middleware.ClearAuthCookies(c, app.Config)
		utils.Respond(c, http.StatusOK, gin.H{}, "user logout successfully")
	}
}
