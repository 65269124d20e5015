package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminView struct {
	AdminID    string `json:"id"`
	Email      string `json:"email"`
	VoteWeight int    `json:"vote_weight"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Admin   AdminView `json:"admin"`
}

type UpdateSettingsRequest struct {
	VoteWeight int `json:"vote_weight" validate:"required,min=1"`
}

type UpdateSettingsResponse struct {
	Message string    `json:"message"`
	Admin   AdminView `json:"admin"`
}
