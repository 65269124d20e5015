package httpserver

import (
	"errors"
	"net/http"

	adminerrors "ovation/contexts/identity-access/admin-service/domain/errors"
	adminhttp "ovation/contexts/identity-access/admin-service/transport/http"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminhttp.LoginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	resp, err := s.admins.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request, adminID string) {
	var req adminhttp.UpdateSettingsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_request", "vote_weight must be a positive integer")
		return
	}

	resp, err := s.admins.Handler.UpdateSettingsHandler(r.Context(), adminID, req)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireAdmin gates a route behind bearer-token authentication. The
// authenticated identity is not forwarded; the route only needs to know
// the caller is an active admin.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenValue := bearerToken(r)
		if tokenValue == "" {
			writeAdminError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		if _, err := s.admins.Handler.AuthenticateHandler(r.Context(), tokenValue); err != nil {
			writeAdminError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		next(w, r)
	}
}

// requireAdminIdentity is like requireAdmin but passes the authenticated
// admin's identifier through to the handler.
func (s *Server) requireAdminIdentity(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenValue := bearerToken(r)
		if tokenValue == "" {
			writeAdminError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		admin, err := s.admins.Handler.AuthenticateHandler(r.Context(), tokenValue)
		if err != nil {
			writeAdminError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		next(w, r, admin.AdminID)
	}
}

func writeAdminError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, adminhttp.ErrorResponse{Code: code, Message: message})
}

func writeAdminDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adminerrors.ErrInvalidAdminInput):
		writeAdminError(w, http.StatusBadRequest, "invalid_admin_input", err.Error())
	case errors.Is(err, adminerrors.ErrInvalidCredentials):
		writeAdminError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, adminerrors.ErrUnauthorized):
		writeAdminError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, adminerrors.ErrAdminNotFound):
		writeAdminError(w, http.StatusNotFound, "admin_not_found", err.Error())
	case errors.Is(err, adminerrors.ErrEmailTaken):
		writeAdminError(w, http.StatusConflict, "email_taken", err.Error())
	default:
		writeAdminError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
