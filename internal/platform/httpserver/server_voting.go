package httpserver

import (
	"errors"
	"net/http"

	votingerrors "ovation/contexts/event-voting/voting-engine/domain/errors"
	votinghttp "ovation/contexts/event-voting/voting-engine/transport/http"
)

func (s *Server) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.IssueCodeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_request", "email and contestant_id are required")
		return
	}

	resp, err := s.voting.Handler.IssueCodeHandler(r.Context(), req, resolveClientIP(r), r.UserAgent())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyAndVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.SubmitCodeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_request", "email, contestant_id and verification_code are required")
		return
	}

	resp, err := s.voting.Handler.SubmitCodeHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteStatistics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.StatisticsHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.DashboardHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetVotes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ResetVotesHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Code: code, Message: message})
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidVoteInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, votingerrors.ErrContestantNotFound):
		writeVotingError(w, http.StatusNotFound, "contestant_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidOrUsedCode):
		writeVotingError(w, http.StatusBadRequest, "invalid_or_used_code", err.Error())
	case errors.Is(err, votingerrors.ErrDeliveryFailure):
		writeVotingError(w, http.StatusBadGateway, "delivery_failure", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
