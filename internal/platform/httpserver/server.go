package httpserver

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	contestantservice "ovation/contexts/event-voting/contestant-service"
	votingengine "ovation/contexts/event-voting/voting-engine"
	adminservice "ovation/contexts/identity-access/admin-service"

	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "ovation/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	environment string
	validate    *validator.Validate
	voteLimiter *ipRateLimiter

	voting      votingengine.Module
	contestants contestantservice.Module
	admins      adminservice.Module
}

type Options struct {
	Addr           string
	Environment    string
	VoteRateBurst  int
	VoteRateWindow time.Duration
}

func New(
	voting votingengine.Module,
	contestants contestantservice.Module,
	admins adminservice.Module,
	logger *slog.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.VoteRateBurst <= 0 {
		opts.VoteRateBurst = 50
	}
	if opts.VoteRateWindow <= 0 {
		opts.VoteRateWindow = 15 * time.Minute
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        opts.Addr,
		environment: opts.Environment,
		validate:    validator.New(),
		voteLimiter: newIPRateLimiter(opts.VoteRateBurst, opts.VoteRateWindow),
		voting:      voting,
		contestants: contestants,
		admins:      admins,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/contestants", s.handleListContestants)
	s.mux.HandleFunc("GET /api/contestants/{contestant_id}", s.handleGetContestant)
	s.mux.HandleFunc("POST /api/contestants", s.requireAdmin(s.handleCreateContestant))
	s.mux.HandleFunc("PUT /api/contestants/{contestant_id}", s.requireAdmin(s.handleUpdateContestant))
	s.mux.HandleFunc("DELETE /api/contestants/{contestant_id}", s.requireAdmin(s.handleDeleteContestant))

	s.mux.HandleFunc("POST /api/votes/send-verification", s.rateLimited(s.handleSendVerification))
	s.mux.HandleFunc("POST /api/votes/verify-and-vote", s.rateLimited(s.handleVerifyAndVote))
	s.mux.HandleFunc("GET /api/votes/statistics", s.requireAdmin(s.handleVoteStatistics))

	s.mux.HandleFunc("POST /api/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("GET /api/admin/dashboard", s.requireAdmin(s.handleAdminDashboard))
	s.mux.HandleFunc("POST /api/admin/reset-votes", s.requireAdmin(s.handleResetVotes))
	s.mux.HandleFunc("PUT /api/admin/settings", s.requireAdminIdentity(s.handleUpdateSettings))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.environment,
	})
}

func (s *Server) decodeAndValidate(r *http.Request, target any) error {
	defer func() { _ = r.Body.Close() }()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return err
	}
	return s.validate.Struct(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
