// Package queries composes the aggregation pipelines behind the read
// endpoints: video listing, comment listing, and liked-video listing.
package queries

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// AnonymousViewer is the membership sentinel used when no user is
// authenticated. It never matches a real ObjectID in a users array.
const AnonymousViewer = ""

type VideoListOptions struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	Owner    *bson.ObjectID
}

// SortOrder maps the caller-chosen direction onto a Mongo sort order:
// "hightolow" is descending, anything else ascending.
func SortOrder(sortType string) int {
	if strings.EqualFold(strings.TrimSpace(sortType), "hightolow") {
		return -1
	}
	return 1
}

// SkipLimit turns a 1-based page and page size into skip/limit values.
func SkipLimit(page, limit int) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return int64((page - 1) * limit), int64(limit)
}

// VideoList builds the listing pipeline: optional owner filter, owner
// profile join, optional case-insensitive search across title, description
// and owner username/fullname, sort, then paginate. Blank sortBy/sortType
// fall back to newest-first.
func VideoList(opts VideoListOptions) mongo.Pipeline {
	sortBy := strings.TrimSpace(opts.SortBy)
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortType := strings.TrimSpace(opts.SortType)
	if sortType == "" {
		sortType = "hightolow"
	}

	skip, limit := SkipLimit(opts.Page, opts.Limit)

	pipeline := mongo.Pipeline{}

	if opts.Owner != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"owner": *opts.Owner}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "userInfo",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"userDetail": bson.M{"$first": "$userInfo"},
		}}},
	)

	if q := strings.TrimSpace(opts.Query); q != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				bson.M{"title": bson.M{"$regex": q, "$options": "i"}},
				bson.M{"description": bson.M{"$regex": q, "$options": "i"}},
				bson.M{"userDetail.username": bson.M{"$regex": q, "$options": "i"}},
				bson.M{"userDetail.fullname": bson.M{"$regex": q, "$options": "i"}},
			},
		}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: SortOrder(sortType)}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.M{
			"userDetail":  1,
			"video":       1,
			"thumbnail":   1,
			"title":       1,
			"description": 1,
			"duration":    1,
			"createdAt":   1,
			"updatedAt":   1,
			"isPublished": 1,
		}}},
	)

	return pipeline
}

// CommentList builds the per-video comment pipeline with the owner profile
// joined and like info derived from the matching Like document. viewer is
// either a bson.ObjectID or AnonymousViewer.
func CommentList(videoID bson.ObjectID, viewer any, page, limit int) mongo.Pipeline {
	skip, lim := SkipLimit(page, limit)

	likedUsers := bson.M{
		"$ifNull": bson.A{
			bson.M{"$arrayElemAt": bson.A{"$commentLikeInfo.users", 0}},
			bson.A{},
		},
	}

	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"video": videoID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "userInfo",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"userDetail": bson.M{"$first": "$userInfo"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "likes",
			"localField":   "_id",
			"foreignField": "comment",
			"as":           "commentLikeInfo",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"likeCount":   bson.M{"$size": likedUsers},
			"viewerLiked": bson.M{"$in": bson.A{viewer, likedUsers}},
		}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: lim}},
		bson.D{{Key: "$project", Value: bson.M{
			"userDetail":  1,
			"content":     1,
			"likeCount":   1,
			"viewerLiked": 1,
		}}},
	}
}

// LikedVideos flattens Like membership, keeps the rows for the viewer, and
// joins the target video along with its owner profile.
func LikedVideos(viewer bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$users"}},
		bson.D{{Key: "$match", Value: bson.M{"users": viewer}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "video",
			"foreignField": "_id",
			"as":           "videoLiked",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"video": bson.M{"$first": "$videoLiked"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "video.owner",
			"foreignField": "_id",
			"as":           "videoOwner",
		}}},
		bson.D{{Key: "$project", Value: bson.M{"video": 1}}},
	}
}
