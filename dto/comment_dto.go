package dto

type AddCommentDTO struct {
	Content string `json:"content"`
}

type UpdateCommentDTO struct {
	Content string `json:"content"`
}
