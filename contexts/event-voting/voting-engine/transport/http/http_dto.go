package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IssueCodeRequest struct {
	Email        string `json:"email" validate:"required,email"`
	ContestantID string `json:"contestant_id" validate:"required"`
}

type IssueCodeResponse struct {
	Message    string `json:"message"`
	IsAdmin    bool   `json:"is_admin"`
	VoteWeight int    `json:"vote_weight"`
}

type SubmitCodeRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ContestantID     string `json:"contestant_id" validate:"required"`
	VerificationCode string `json:"verification_code" validate:"required"`
}

type SubmitCodeResponse struct {
	Message    string `json:"message"`
	VoteWeight int    `json:"vote_weight"`
	IsAdmin    bool   `json:"is_admin"`
	TotalVotes int    `json:"total_votes"`
}

type ContestantStatisticsItem struct {
	ContestantID string `json:"contestant_id"`
	TotalVotes   int    `json:"total_votes"`
	VoterCount   int    `json:"voter_count"`
	AdminVotes   int    `json:"admin_votes"`
}

type StatisticsResponse struct {
	Items []ContestantStatisticsItem `json:"items"`
}

type DashboardContestant struct {
	ContestantID string `json:"contestant_id"`
	Name         string `json:"name"`
	Votes        int    `json:"votes"`
}

type DashboardTotals struct {
	TotalVotes       int `json:"total_votes"`
	TotalVoters      int `json:"total_voters"`
	TotalContestants int `json:"total_contestants"`
}

type RecentVoteItem struct {
	VoterEmail     string `json:"voter_email"`
	ContestantID   string `json:"contestant_id"`
	ContestantName string `json:"contestant_name"`
	VoteWeight     int    `json:"vote_weight"`
	IsAdmin        bool   `json:"is_admin"`
	VerifiedAt     string `json:"verified_at"`
}

type DashboardResponse struct {
	Contestants []DashboardContestant `json:"contestants"`
	Statistics  DashboardTotals       `json:"statistics"`
	RecentVotes []RecentVoteItem      `json:"recent_votes"`
}

type ResetResponse struct {
	Message string `json:"message"`
}
