package dto

type PublishVideoDTO struct {
	Title       string  `form:"title"`
	Description string  `form:"description"`
	Duration    float64 `form:"duration"`
}

// UpdateVideoDTO fields are all optional; at least one of them (or a
// replacement video/thumbnail file) must be provided.
type UpdateVideoDTO struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type VideoListQuery struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}
