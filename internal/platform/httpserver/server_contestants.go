package httpserver

import (
	"errors"
	"net/http"

	contestanterrors "ovation/contexts/event-voting/contestant-service/domain/errors"
	contestanthttp "ovation/contexts/event-voting/contestant-service/transport/http"
)

func (s *Server) handleListContestants(w http.ResponseWriter, r *http.Request) {
	resp, err := s.contestants.Handler.ListContestantsHandler(r.Context())
	if err != nil {
		writeContestantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContestant(w http.ResponseWriter, r *http.Request) {
	contestantID := r.PathValue("contestant_id")
	resp, err := s.contestants.Handler.GetContestantHandler(r.Context(), contestantID)
	if err != nil {
		writeContestantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateContestant(w http.ResponseWriter, r *http.Request) {
	var req contestanthttp.CreateContestantRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeContestantError(w, http.StatusBadRequest, "invalid_request", "name, description and avatar are required")
		return
	}

	resp, err := s.contestants.Handler.CreateContestantHandler(r.Context(), req)
	if err != nil {
		writeContestantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateContestant(w http.ResponseWriter, r *http.Request) {
	contestantID := r.PathValue("contestant_id")

	var req contestanthttp.UpdateContestantRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeContestantError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.contestants.Handler.UpdateContestantHandler(r.Context(), contestantID, req)
	if err != nil {
		writeContestantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteContestant(w http.ResponseWriter, r *http.Request) {
	contestantID := r.PathValue("contestant_id")
	resp, err := s.contestants.Handler.DeleteContestantHandler(r.Context(), contestantID)
	if err != nil {
		writeContestantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeContestantError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, contestanthttp.ErrorResponse{Code: code, Message: message})
}

func writeContestantDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contestanterrors.ErrInvalidContestantInput):
		writeContestantError(w, http.StatusBadRequest, "invalid_contestant_input", err.Error())
	case errors.Is(err, contestanterrors.ErrInvalidAvatar):
		writeContestantError(w, http.StatusBadRequest, "invalid_avatar", err.Error())
	case errors.Is(err, contestanterrors.ErrContestantNotFound):
		writeContestantError(w, http.StatusNotFound, "contestant_not_found", err.Error())
	case errors.Is(err, contestanterrors.ErrNameTaken):
		writeContestantError(w, http.StatusConflict, "name_taken", err.Error())
	default:
		writeContestantError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
