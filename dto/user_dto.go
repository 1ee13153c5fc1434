package dto

type RegisterUserDTO struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Fullname string `form:"fullname"`
	Password string `form:"password"`
}

type LoginDTO struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// RefreshDTO carries a refresh token submitted in a request body instead of
// the refreshToken cookie.
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}
