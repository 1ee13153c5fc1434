package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"playtube-backend/database"
	"playtube-backend/dto"
	"playtube-backend/middleware"
	"playtube-backend/models"
	"playtube-backend/queries"
	"playtube-backend/utils"
)

// GetComments lists a video's comments with owner profile and like info.
// Anonymous viewers get viewerLiked computed against the empty sentinel.
func GetComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")
		commentsCol := database.OpenCollection("comments")

		videoID, err := bson.ObjectIDFromHex(c.Param("videoId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video unavailable"))
			return
		}

		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Err(); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video unavailable"))
			return
		}

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 10)

		var viewer any = queries.AnonymousViewer
		if user := middleware.CurrentUser(c); user != nil {
			viewer = user.ID
		}

		cursor, err := commentsCol.Aggregate(ctx, queries.CommentList(videoID, viewer, page, limit))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "unable to find video comments"))
			return
		}
		defer cursor.Close(ctx)

		comments := make([]bson.M, 0)
		if err := cursor.All(ctx, &comments); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "unable to find video comments"))
			return
		}

		utils.Respond(c, http.StatusOK, comments, "comments fetched successfully")
	}
}

func AddComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")
		commentsCol := database.OpenCollection("comments")
		user := middleware.CurrentUser(c)

		videoID, err := bson.ObjectIDFromHex(c.Param("videoId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video unavailable, cannot comment"))
			return
		}

		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Err(); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video unavailable, cannot comment"))
			return
		}

		var body dto.AddCommentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		content := strings.TrimSpace(body.Content)
		if content == "" {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "comment content is required"))
			return
		}

		now := time.Now().UTC()
		comment := models.Comment{
			ID:        bson.NewObjectID(),
			Owner:     user.ID,
			Video:     videoID,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := commentsCol.InsertOne(ctx, comment); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while commenting"))
			return
		}

		utils.Respond(c, http.StatusOK, comment, "successfully commented")
	}
}

func UpdateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		commentsCol := database.OpenCollection("comments")
		user := middleware.CurrentUser(c)

		commentID, err := bson.ObjectIDFromHex(c.Param("commentId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "comment not found"))
			return
		}

		var body dto.UpdateCommentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		content := strings.TrimSpace(body.Content)
		if content == "" {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "updation field required"))
			return
		}

		var comment models.Comment
		if err := commentsCol.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "comment not found"))
			return
		}

		if !utils.IsOwner(user.ID.Hex(), comment.Owner) {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user is unauthorized to edit comment"))
			return
		}

		_, err = commentsCol.UpdateByID(ctx, commentID, bson.M{
			"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()},
		})
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while updating the comment"))
			return
		}

		var updated models.Comment
		if err := commentsCol.FindOne(ctx, bson.M{"_id": commentID}).Decode(&updated); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while updating"))
			return
		}

		utils.Respond(c, http.StatusNoContent, updated, "updation successful")
	}
}

func DeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		commentsCol := database.OpenCollection("comments")
		user := middleware.CurrentUser(c)

		commentID, err := bson.ObjectIDFromHex(c.Param("commentId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "unable to locate comment"))
			return
		}

		var comment models.Comment
		if err := commentsCol.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "unable to locate comment"))
			return
		}

		if !utils.IsOwner(user.ID.Hex(), comment.Owner) {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user is unauthorized to delete comment"))
			return
		}

		if _, err := commentsCol.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while deleting the comment"))
			return
		}

		utils.Respond(c, http.StatusOK, comment, "comment deleted successfully")
	}
}
