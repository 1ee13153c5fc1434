package controllers

import (
	"context"
	"log"
	"mime/multipart"
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
	"playtube-backend/storage"
	"playtube-backend/utils"
)

func GetVideos(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")

		var query dto.VideoListQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		opts := queries.VideoListOptions{
			Page:     query.Page,
			Limit:    query.Limit,
			Query:    query.Query,
			SortBy:   query.SortBy,
			SortType: query.SortType,
		}

		if userID := strings.TrimSpace(query.UserID); userID != "" {
			ownerID, err := bson.ObjectIDFromHex(userID)
			if err != nil {
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "invalid user id"))
				return
			}
			// Only filter by owner when that owner actually exists.
			if _, err := app.Users.FindUserByID(ctx, ownerID); err == nil {
				opts.Owner = &ownerID
			}
		}

		cursor, err := videosCol.Aggregate(ctx, queries.VideoList(opts))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "failed to find videos"))
			return
		}
		defer cursor.Close(ctx)

		videos := make([]bson.M, 0)
		if err := cursor.All(ctx, &videos); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "failed to find videos"))
			return
		}

		if len(videos) == 0 {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "no videos available"))
			return
		}

		utils.Respond(c, http.StatusOK, videos, "data retrieval success")
	}
}

func GetVideoByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")

		videoID, err := bson.ObjectIDFromHex(c.Param("videoId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		var video models.Video
		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		utils.Respond(c, http.StatusOK, video, "video fetched successfully")
	}
}

// PublishVideo uploads the video and its thumbnail, then creates the record
// with isPublished set. Both remote assets are destroyed again when the
// insert fails.
func PublishVideo(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")
		user := middleware.CurrentUser(c)

		var body dto.PublishVideoDTO
		if err := c.ShouldBind(&body); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		videoFile, _ := c.FormFile("video")
		thumbFile, _ := c.FormFile("thumbnail")

		videoPath, thumbPath, apiErr := saveVideoUploads(c, videoFile, thumbFile, true)
		if apiErr != nil {
			utils.RespondError(c, apiErr)
			return
		}

		if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Description) == "" {
			storage.RemoveTemp(videoPath, thumbPath)
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "all fields are mandatory"))
			return
		}

		video, err := app.Media.Upload(ctx, videoPath, storage.UploadOptions{ResourceType: storage.ResourceVideo})
		if err != nil {
			storage.RemoveTemp(thumbPath)
			log.Printf("video upload: %v", err)
			utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "failed to upload video"))
			return
		}

		thumbnail, err := app.Media.Upload(ctx, thumbPath, storage.UploadOptions{ResourceType: storage.ResourceImage})
		if err != nil {
			log.Printf("thumbnail upload: %v", err)
			utils.RespondError(c, utils.NewApiError(http.StatusInternalServerError, "failed to upload thumbnail"))
			return
		}

		now := time.Now().UTC()
		doc := models.Video{
			ID:          bson.NewObjectID(),
			Owner:       user.ID,
			Video:       video.URL,
			Thumbnail:   thumbnail.URL,
			Title:       body.Title,
			Description: body.Description,
			Duration:    body.Duration,
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := videosCol.InsertOne(ctx, doc); err != nil {
			app.Media.Destroy(ctx, video.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceVideo})
			app.Media.Destroy(ctx, thumbnail.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceImage})
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while uploading video and assets were deleted"))
			return
		}

		var created models.Video
		if err := videosCol.FindOne(ctx, bson.M{"_id": doc.ID}).Decode(&created); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while uploading the video"))
			return
		}

		utils.Respond(c, http.StatusCreated, created, "video published successfully")
	}
}

// UpdateVideo applies the provided fields only. Replaced remote assets are
// destroyed after the record update succeeds; freshly uploaded replacements
// are destroyed when it fails.
func UpdateVideo(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")
		user := middleware.CurrentUser(c)

		videoID, err := bson.ObjectIDFromHex(c.Param("videoId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		var body dto.UpdateVideoDTO
		if err := c.ShouldBind(&body); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, err.Error()))
			return
		}

		videoFile, _ := c.FormFile("video")
		thumbFile, _ := c.FormFile("thumbnail")

		var oldVideo models.Video
		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Decode(&oldVideo); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		if !utils.IsOwner(user.ID.Hex(), oldVideo.Owner) {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user is unauthorized to update the video"))
			return
		}

		title := strings.TrimSpace(body.Title)
		description := strings.TrimSpace(body.Description)
		if title == "" && description == "" && videoFile == nil && thumbFile == nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "updation fields required"))
			return
		}

		videoPath, thumbPath, apiErr := saveVideoUploads(c, videoFile, thumbFile, false)
		if apiErr != nil {
			utils.RespondError(c, apiErr)
			return
		}

		var newVideo, newThumbnail *storage.UploadResult
		if videoPath != "" {
			newVideo, err = app.Media.Upload(ctx, videoPath, storage.UploadOptions{ResourceType: storage.ResourceVideo})
			if err != nil {
				storage.RemoveTemp(thumbPath)
				log.Printf("video upload: %v", err)
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "failed to upload video"))
				return
			}
		}
		if thumbPath != "" {
			newThumbnail, err = app.Media.Upload(ctx, thumbPath, storage.UploadOptions{ResourceType: storage.ResourceImage})
			if err != nil {
				if newVideo != nil {
					app.Media.Destroy(ctx, newVideo.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceVideo})
				}
				log.Printf("thumbnail upload: %v", err)
				utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "failed to upload thumbnail"))
				return
			}
		}

		set := bson.M{"updatedAt": time.Now().UTC()}
		if title != "" {
			set["title"] = title
		}
		if description != "" {
			set["description"] = description
		}
		if newVideo != nil {
			set["video"] = newVideo.URL
		}
		if newThumbnail != nil {
			set["thumbnail"] = newThumbnail.URL
		}

		if _, err := videosCol.UpdateByID(ctx, videoID, bson.M{"$set": set}); err != nil {
			if newVideo != nil {
				app.Media.Destroy(ctx, newVideo.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceVideo})
			}
			if newThumbnail != nil {
				app.Media.Destroy(ctx, newThumbnail.ObjectName, storage.UploadOptions{ResourceType: storage.ResourceImage})
			}
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong and assets were deleted"))
			return
		}

		// The update stuck; the superseded remote assets are garbage now.
		if newVideo != nil {
			destroyByURL(ctx, app, oldVideo.Video, storage.ResourceVideo)
		}
		if newThumbnail != nil {
			destroyByURL(ctx, app, oldVideo.Thumbnail, storage.ResourceImage)
		}

		var updated models.Video
		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Decode(&updated); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while updating video"))
			return
		}

		utils.Respond(c, http.StatusNoContent, updated, "updation successful")
	}
}

func DeleteVideo(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		videosCol := database.OpenCollection("videos")
		user := middleware.CurrentUser(c)

		videoID, err := bson.ObjectIDFromHex(c.Param("videoId"))
		if err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		var video models.Video
		if err := videosCol.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "video not found"))
			return
		}

		if !utils.IsOwner(user.ID.Hex(), video.Owner) {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "user is not authorized to delete the video"))
			return
		}

		if _, err := videosCol.DeleteOne(ctx, bson.M{"_id": videoID}); err != nil {
			utils.RespondError(c, utils.NewApiError(http.StatusBadRequest, "something went wrong while deleting the video"))
			return
		}

		destroyByURL(ctx, app, video.Video, storage.ResourceVideo)
		destroyByURL(ctx, app, video.Thumbnail, storage.ResourceImage)

		utils.Respond(c, http.StatusOK, video, "video deleted successfully")
	}
}

// saveVideoUploads validates media types and stages both files in the temp
// dir. When required is set, missing files are errors; otherwise each file
// is optional but still type checked.
func saveVideoUploads(c *gin.Context, videoFile, thumbFile *multipart.FileHeader, required bool) (string, string, *utils.ApiError) {
	if required && videoFile == nil {
		return "", "", utils.NewApiError(http.StatusBadRequest, "video required")
	}
	if required && thumbFile == nil {
		return "", "", utils.NewApiError(http.StatusBadRequest, "thumbnail required")
	}

	if videoFile != nil && videoFile.Header.Get("Content-Type") != "video/mp4" {
		return "", "", utils.NewApiError(http.StatusBadRequest, "video file unsupported")
	}
	if thumbFile != nil && thumbFile.Header.Get("Content-Type") == "video/mp4" {
		return "", "", utils.NewApiError(http.StatusBadRequest, "thumbnail should be an image")
	}

	var videoPath, thumbPath string
	if videoFile != nil {
		path, err := storage.SaveTemp(c, videoFile)
		if err != nil {
			return "", "", utils.NewApiError(http.StatusBadRequest, "failed to read video")
		}
		videoPath = path
	}
	if thumbFile != nil {
		path, err := storage.SaveTemp(c, thumbFile)
		if err != nil {
			storage.RemoveTemp(videoPath)
			return "", "", utils.NewApiError(http.StatusBadRequest, "failed to read thumbnail")
		}
		thumbPath = path
	}
	return videoPath, thumbPath, nil
}

// destroyByURL derives the object name from a stored public URL and issues
// a best-effort delete.
func destroyByURL(ctx context.Context, app *App, rawURL string, resource storage.ResourceType) {
	obj, err := app.Media.ObjectNameFromURL(rawURL)
	if err != nil {
		log.Printf("derive object name from %s: %v", rawURL, err)
		return
	}
	app.Media.Destroy(ctx, obj, storage.UploadOptions{ResourceType: resource})
}
