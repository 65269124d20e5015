package errors

import "errors"

var (
	ErrInvalidContestantInput = errors.New("invalid contestant input")
	ErrContestantNotFound     = errors.New("contestant not found")
	ErrNameTaken              = errors.New("contestant with this name already exists")
	ErrInvalidAvatar          = errors.New("avatar must be a valid URL")
)
