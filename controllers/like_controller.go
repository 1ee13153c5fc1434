package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"playtube-backend/database"
	"playtube-backend/middleware"
	"playtube-backend/models"
	"playtube-backend/queries"
	"playtube-backend/utils"
)

// ToggleVideoLike flips the viewer's membership in the video's Like
// document, creating the document lazily on first like. The document stays
// around even when nobody likes the video anymore.
func ToggleVideoLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")
		likesCol := database.OpenCollection("likes")
		user := middleware.CurrentUser(c)

		videoID, err := bson.ObjectIDFromHex(c.Param("videoId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Err(); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		toggled, err := toggleLike(ctx, likesCol, bson.M{"video": videoID}, models.Like{
			ID:    bson.NewObjectID(),
			Users: []bson.ObjectID{},
			Video: &videoID,
		}, user.ID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, toggled, "like toggled")
	}
}

func ToggleCommentLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		commentsCol := database.OpenCollection("comments")
		likesCol := database.OpenCollection("likes")
		user := middleware.CurrentUser(c)

		commentID, err := bson.ObjectIDFromHex(c.Param("commentId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "comment not found"))
			return
		}

		if err := commentsCol.FindOne(ctx, bson.M{"_id": commentID}).Err(); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "comment not found"))
			return
		}

		toggled, err := toggleLike(ctx, likesCol, bson.M{"comment": commentID}, models.Like{
			ID:      bson.NewObjectID(),
			Users:   []bson.ObjectID{},
			Comment: &commentID,
		}, user.ID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, toggled, "like toggled")
	}
}

func GetLikedVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		likesCol := database.OpenCollection("likes")
		user := middleware.CurrentUser(c)

		cursor, err := likesCol.Aggregate(ctx, queries.LikedVideos(user.ID))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong in aggregation pipeline"))
			return
		}
		defer cursor.Close(ctx)

		liked := make([]bson.M, 0)
		if err := cursor.All(ctx, &liked); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong in aggregation pipeline"))
			return
		}

		utils.Respond(c, http.StatusOK, liked, "user liked video retrieval success")
	}
}

// toggleLike finds (or lazily creates) the single Like document for the
// filter, then adds or removes the viewer from its member set. Membership
// changes ride on $addToSet/$pull so the document update itself is atomic.
func toggleLike(ctx context.Context, likesCol *mongo.Collection, filter bson.M, fresh models.Like, viewer bson.ObjectID) (*models.Like, error) {
	var like models.Like
	err := likesCol.FindOne(ctx, filter).Decode(&like)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, insErr := likesCol.InsertOne(ctx, fresh); insErr != nil {
			return nil, utils.NewApiError(http.StatusBadRequest, "something went wrong while creating the like")
		}
		like = fresh
	} else if err != nil {
		return nil, utils.NewApiError(http.StatusBadRequest, "something went wrong while getting the like")
	}

	member := false
	for _, u := range like.Users {
		if u == viewer {
			member = true
			break
		}
	}

	update := bson.M{"$addToSet": bson.M{"users": viewer}}
	if member {
		update = bson.M{"$pull": bson.M{"users": viewer}}
	}

	if _, err := likesCol.UpdateOne(ctx, filter, update); err != nil {
		return nil, utils.NewApiError(http.StatusBadRequest, "something went wrong while toggling the like")
	}

	var toggled models.Like
	if err := likesCol.FindOne(ctx, filter).Decode(&toggled); err != nil {
		return nil, utils.NewApiError(http.StatusBadRequest, "something went wrong while getting the like")
	}
	return &toggled, nil
}
