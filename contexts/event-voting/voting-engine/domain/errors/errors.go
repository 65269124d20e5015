package errors

import "errors"

var (
	ErrInvalidVoteInput   = errors.New("invalid vote input")
	ErrContestantNotFound = errors.New("contestant not found")
	ErrAlreadyVoted       = errors.New("this email has already voted")
	ErrInvalidOrUsedCode  = errors.New("invalid verification code or already used")
	ErrDeliveryFailure    = errors.New("failed to send verification email")
	ErrConflict           = errors.New("verification record conflict")
)
