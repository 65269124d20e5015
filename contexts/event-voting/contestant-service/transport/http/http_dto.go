package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateContestantRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	AvatarURL   string `json:"avatar" validate:"required"`
}

type UpdateContestantRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	AvatarURL   string `json:"avatar,omitempty"`
}

type VoterView struct {
	VotedAt string `json:"voted_at"`
	IsAdmin bool   `json:"is_admin"`
}

type ContestantResponse struct {
	ContestantID string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	AvatarURL    string      `json:"avatar"`
	Votes        int         `json:"votes"`
	Voters       []VoterView `json:"voters"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    string      `json:"created_at"`
}

type ContestantListResponse struct {
	Items []ContestantResponse `json:"items"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
