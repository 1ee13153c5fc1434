package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"playtube-backend/config"
	"playtube-backend/controllers"
	"playtube-backend/database"
	"playtube-backend/middleware"
	"playtube-backend/storage"
	"playtube-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	database.Connect(cfg)
	users := database.NewUserStore(database.OpenCollection("users"))

	media, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	tokens := utils.NewTokenManager(cfg, users)

	app := &controllers.App{
		Config: cfg,
		Media:  media,
		Tokens: tokens,
		Users:  users,
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.Auth(cfg, tokens, users, false)
	authRead := middleware.Auth(cfg, tokens, users, true)

	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", controllers.Healthcheck())

	user := v1.Group("/user")
	{
		user.POST("/register", controllers.RegisterUser(app))
		user.POST("/login", controllers.Login(app))
		user.POST("/refresh-token", auth, controllers.GetCurrentUser())
		user.GET("/current-user", auth, controllers.GetCurrentUser())
		user.GET("/logout", auth, controllers.LogoutUser(app))
	}

	video := v1.Group("/video")
	{
		video.GET("", authRead, controllers.GetVideos(app))
		video.GET("/:videoId", authRead, controllers.GetVideoByID())
		video.POST("/upload-video", auth, controllers.PublishVideo(app))
		video.PATCH("/:videoId", auth, controllers.UpdateVideo(app))
		video.DELETE("/:videoId", auth, controllers.DeleteVideo(app))
	}

	comment := v1.Group("/comment")
	{
		comment.GET("/:videoId", authRead, controllers.GetComments())
		comment.POST("/:videoId", auth, controllers.AddComment())
		comment.PATCH("/:commentId", auth, controllers.UpdateComment())
		comment.DELETE("/:commentId", auth, controllers.DeleteComment())
	}

	like := v1.Group("/like")
	{
		like.GET("", auth, controllers.GetLikedVideos())
		like.POST("/video/:videoId", auth, controllers.ToggleVideoLike())
		like.POST("/comment/:commentId", auth, controllers.ToggleCommentLike())
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
