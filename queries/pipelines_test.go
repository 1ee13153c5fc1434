package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func stageValue(t *testing.T, pipeline mongo.Pipeline, operator string) (any, bool) {
	t.Helper()
	for _, stage := range pipeline {
		for _, elem := range stage {
			if elem.Key == operator {
				return elem.Value, true
			}
		}
	}
	return nil, false
}

func TestSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		sortType string
		expected int
	}{
		{name: "hightolow is descending", sortType: "hightolow", expected: -1},
		{name: "case insensitive", sortType: "HighToLow", expected: -1},
		{name: "lowtohigh is ascending", sortType: "lowtohigh", expected: 1},
		{name: "anything else is ascending", sortType: "whatever", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortOrder(tt.sortType))
		})
	}
}

func TestSkipLimit(t *testing.T) {
	tests := []struct {
		name         string
		page, limit  int
		expectedSkip int64
		expectedLim  int64
	}{
		{name: "first page", page: 1, limit: 10, expectedSkip: 0, expectedLim: 10},
		{name: "second page", page: 2, limit: 10, expectedSkip: 10, expectedLim: 10},
		{name: "larger pages", page: 3, limit: 25, expectedSkip: 50, expectedLim: 25},
		{name: "zero page clamps to one", page: 0, limit: 10, expectedSkip: 0, expectedLim: 10},
		{name: "zero limit defaults", page: 1, limit: 0, expectedSkip: 0, expectedLim: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, lim := SkipLimit(tt.page, tt.limit)
			assert.Equal(t, tt.expectedSkip, skip)
			assert.Equal(t, tt.expectedLim, lim)
		})
	}
}

func TestVideoListDefaultSort(t *testing.T) {
	pipeline := VideoList(VideoListOptions{Page: 1, Limit: 10})

	sort, ok := stageValue(t, pipeline, "$sort")
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sort)
}

func TestVideoListExplicitSort(t *testing.T) {
	pipeline := VideoList(VideoListOptions{Page: 1, Limit: 10, SortBy: "duration", SortType: "lowtohigh"})

	sort, ok := stageValue(t, pipeline, "$sort")
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "duration", Value: 1}}, sort)
}

func TestVideoListOwnerFilter(t *testing.T) {
	owner := bson.NewObjectID()

	withOwner := VideoList(VideoListOptions{Page: 1, Limit: 10, Owner: &owner})
	match, ok := stageValue(t, withOwner, "$match")
	require.True(t, ok)
	assert.Equal(t, bson.M{"owner": owner}, match)

	withoutOwner := VideoList(VideoListOptions{Page: 1, Limit: 10})
	_, ok = stageValue(t, withoutOwner, "$match")
	assert.False(t, ok)
}

func TestVideoListSearchStage(t *testing.T) {
	pipeline := VideoList(VideoListOptions{Page: 1, Limit: 10, Query: "gopher"})

	match, ok := stageValue(t, pipeline, "$match")
	require.True(t, ok)

	or, ok := match.(bson.M)["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)
	assert.Equal(t, bson.M{"title": bson.M{"$regex": "gopher", "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"userDetail.username": bson.M{"$regex": "gopher", "$options": "i"}}, or[2])
}

func TestVideoListPagination(t *testing.T) {
	pipeline := VideoList(VideoListOptions{Page: 3, Limit: 5})

	skip, ok := stageValue(t, pipeline, "$skip")
	require.True(t, ok)
	assert.Equal(t, int64(10), skip)

	limit, ok := stageValue(t, pipeline, "$limit")
	require.True(t, ok)
	assert.Equal(t, int64(5), limit)
}

func TestCommentListViewerSentinel(t *testing.T) {
	videoID := bson.NewObjectID()
	pipeline := CommentList(videoID, AnonymousViewer, 1, 10)

	var likeFields bson.M
	for _, stage := range pipeline {
		for _, elem := range stage {
			if elem.Key != "$addFields" {
				continue
			}
			fields := elem.Value.(bson.M)
			if _, ok := fields["viewerLiked"]; ok {
				likeFields = fields
			}
		}
	}
	require.NotNil(t, likeFields)

	in := likeFields["viewerLiked"].(bson.M)["$in"].(bson.A)
	assert.Equal(t, AnonymousViewer, in[0])
}

func TestCommentListFiltersByVideo(t *testing.T) {
	videoID := bson.NewObjectID()
	pipeline := CommentList(videoID, bson.NewObjectID(), 1, 10)

	match, ok := stageValue(t, pipeline, "$match")
	require.True(t, ok)
	assert.Equal(t, bson.M{"video": videoID}, match)

	project, ok := stageValue(t, pipeline, "$project")
	require.True(t, ok)
	assert.Equal(t, bson.M{
		"userDetail":  1,
		"content":     1,
		"likeCount":   1,
		"viewerLiked": 1,
	}, project)
}

func TestLikedVideosShape(t *testing.T) {
	viewer := bson.NewObjectID()
	pipeline := LikedVideos(viewer)

	unwind, ok := stageValue(t, pipeline, "$unwind")
	require.True(t, ok)
	assert.Equal(t, "$users", unwind)

	match, ok := stageValue(t, pipeline, "$match")
	require.True(t, ok)
	assert.Equal(t, bson.M{"users": viewer}, match)

	project, ok := stageValue(t, pipeline, "$project")
	require.True(t, ok)
	assert.Equal(t, bson.M{"video": 1}, project)
}
