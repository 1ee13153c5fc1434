package controllers

import (
	"playtube-backend/config"
	"playtube-backend/database"
	"playtube-backend/storage"
	"playtube-backend/utils"
)

// App bundles the startup-time dependencies the handlers need.
type App struct {
	Config *config.Config
	Media  storage.MediaStore
	Tokens *utils.TokenManager
	Users  *database.UserStore
}
