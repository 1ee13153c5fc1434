package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"playtube-backend/utils"
)

func Healthcheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, "OK", "Health check passed")
	}
}
