// package http exposes the state store over JSON/HTTP. Handlers decode the
// request, call the store or the session manager and encode the result; all
// business rules live in the store.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/YusovID/skillswap-service/internal/export"
	"github.com/YusovID/skillswap-service/internal/validation"
	"github.com/YusovID/skillswap-service/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the set of state store operations served over HTTP.
type Store interface {
	ListPublicUsers(ctx context.Context) []domain.User
	ListUsers(ctx context.Context) []domain.User
	GetUserByID(ctx context.Context, id string) (domain.User, bool)
	CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error)
	UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error)
	SetUserVisibility(ctx context.Context, id string, public bool) (domain.User, error)
	SearchUsers(ctx context.Context, query, category string) []domain.User

	CreateSwapRequest(ctx context.Context, in domain.NewSwapRequest) (domain.SwapRequest, error)
	GetRequestsForUser(ctx context.Context, userID string) []domain.SwapRequest
	ListSwapRequests(ctx context.Context) []domain.SwapRequest
	GetSwapRequest(ctx context.Context, id string) (domain.SwapRequest, bool)
	UpdateSwapRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (domain.SwapRequest, *domain.ActiveSwap, error)
	DeleteSwapRequest(ctx context.Context, id string) error

	ListActiveSwaps(ctx context.Context) []domain.ActiveSwap
	GetSwapsForUser(ctx context.Context, userID string) []domain.ActiveSwap
	GetSwap(ctx context.Context, id string) (domain.ActiveSwap, bool)
	GetSwapForRequest(ctx context.Context, requestID string) (domain.ActiveSwap, bool)
	UpdateSwapProgress(ctx context.Context, id string, p domain.SwapProgress) (domain.ActiveSwap, error)
	CompleteSwap(ctx context.Context, id string, c domain.SwapCompletion) (domain.ActiveSwap, error)

	CreateReport(ctx context.Context, in domain.NewReport) (domain.Report, error)
	ListReports(ctx context.Context) []domain.Report
	UpdateReportStatus(ctx context.Context, id string, status domain.ReportStatus) (domain.Report, error)
	CreatePlatformMessage(ctx context.Context, in domain.NewPlatformMessage) (domain.PlatformMessage, error)
	ListPlatformMessages(ctx context.Context) []domain.PlatformMessage
	CreateSwapRating(ctx context.Context, in domain.NewSwapRating) (domain.SwapRating, error)
	ListSwapRatings(ctx context.Context) []domain.SwapRating

	GetStats(ctx context.Context) domain.Stats
	ExportUserActivity(ctx context.Context) domain.ActivityExport
}

type Sessions interface {
	Login(ctx context.Context, email string) (domain.User, error)
	Current(ctx context.Context) (domain.User, error)
	Refresh(ctx context.Context) (domain.User, error)
	Logout(ctx context.Context) error
}

type Server struct {
	log      *slog.Logger
	store    Store
	sessions Sessions
}

func NewServer(log *slog.Logger, store Store, sessions Sessions) *Server {
	return &Server{
		log:      log,
		store:    store,
		sessions: sessions,
	}
}

// Routes sets up the router with all middleware and endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/session", func(r chi.Router) {
		r.Post("/", s.login)
		r.Get("/", s.currentSession)
		r.Post("/refresh", s.refreshSession)
		r.Delete("/", s.logout)
	})

	mux.Route("/users", func(r chi.Router) {
		r.Get("/", s.searchUsers)
		r.Post("/", s.createUser)
		r.Get("/{id}", s.getUser)
		r.Patch("/{id}", s.updateUser)
		r.Get("/{id}/requests", s.userRequests)
		r.Get("/{id}/swaps", s.userSwaps)
	})

	mux.Route("/requests", func(r chi.Router) {
		r.Post("/", s.createSwapRequest)
		r.Get("/{id}", s.getSwapRequest)
		r.Get("/{id}/swap", s.swapForRequest)
		r.Patch("/{id}/status", s.updateSwapRequestStatus)
		r.Delete("/{id}", s.deleteSwapRequest)
	})

	mux.Route("/swaps", func(r chi.Router) {
		r.Get("/", s.listActiveSwaps)
		r.Get("/{id}", s.getSwap)
		r.Patch("/{id}/progress", s.updateSwapProgress)
		r.Post("/{id}/complete", s.completeSwap)
	})

	mux.Post("/reports", s.createReport)
	mux.Get("/messages", s.listPlatformMessages)
	mux.Post("/ratings", s.createSwapRating)
	mux.Get("/stats", s.getStats)

	mux.Route("/admin", func(r chi.Router) {
		r.Get("/users", s.listAllUsers)
		r.Post("/users/{id}/ban", s.setVisibility(false))
		r.Post("/users/{id}/unban", s.setVisibility(true))
		r.Get("/requests", s.listSwapRequests)
		r.Get("/reports", s.listReports)
		r.Patch("/reports/{id}/status", s.updateReportStatus)
		r.Post("/messages", s.createPlatformMessage)
		r.Get("/ratings", s.listSwapRatings)
		r.Get("/export", s.exportActivity)
	})

	return mux
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.login"

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.sessions.Login(r.Context(), req.Email)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.User{"user": user})
}

func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.currentSession"

	user, err := s.sessions.Current(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.User{"user": user})
}

func (s *Server) refreshSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.refreshSession"

	user, err := s.sessions.Refresh(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.User{"user": user})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.logout"

	if err := s.sessions.Logout(r.Context()); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	users := s.store.SearchUsers(r.Context(), q.Get("q"), q.Get("category"))

	s.respond(w, http.StatusOK, map[string][]domain.User{"users": users})
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createUser"

	var in domain.NewUser
	if err := s.decode(r.Body, &in); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), in)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]domain.User{"user": user})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUser"

	id := chi.URLParam(r, "id")

	user, ok := s.store.GetUserByID(r.Context(), id)
	if !ok {
		s.handleServiceError(w, r, op, &apperrors.NotFoundError{Kind: "user", ID: id})
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.User{"user": user})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateUser"

	var upd domain.UserUpdate
	if err := s.decode(r.Body, &upd); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.store.UpdateUser(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.User{"user": user})
}

func (s *Server) userRequests(w http.ResponseWriter, r *http.Request) {
	requests := s.store.GetRequestsForUser(r.Context(), chi.URLParam(r, "id"))

	s.respond(w, http.StatusOK, map[string][]domain.SwapRequest{"requests": requests})
}

func (s *Server) userSwaps(w http.ResponseWriter, r *http.Request) {
	swaps := s.store.GetSwapsForUser(r.Context(), chi.URLParam(r, "id"))

	s.respond(w, http.StatusOK, map[string][]domain.ActiveSwap{"swaps": swaps})
}

func (s *Server) createSwapRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createSwapRequest"

	var in domain.NewSwapRequest
	if err := s.decode(r.Body, &in); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	req, err := s.store.CreateSwapRequest(r.Context(), in)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]domain.SwapRequest{"request": req})
}

func (s *Server) getSwapRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSwapRequest"

	id := chi.URLParam(r, "id")

	req, ok := s.store.GetSwapRequest(r.Context(), id)
	if !ok {
		s.handleServiceError(w, r, op, &apperrors.NotFoundError{Kind: "swap request", ID: id})
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.SwapRequest{"request": req})
}

func (s *Server) swapForRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.swapForRequest"

	id := chi.URLParam(r, "id")

	swap, ok := s.store.GetSwapForRequest(r.Context(), id)
	if !ok {
		s.handleServiceError(w, r, op, &apperrors.NotFoundError{Kind: "swap for request", ID: id})
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.ActiveSwap{"swap": swap})
}

func (s *Server) updateSwapRequestStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateSwapRequestStatus"

	var body requestStatusRequest
	if err := s.decodeAndValidate(r, &body); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	req, swap, err := s.store.UpdateSwapRequestStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, requestStatusResponse{Request: req, Swap: swap})
}

func (s *Server) deleteSwapRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteSwapRequest"

	if err := s.store.DeleteSwapRequest(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listActiveSwaps(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]domain.ActiveSwap{"swaps": s.store.ListActiveSwaps(r.Context())})
}

func (s *Server) getSwap(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSwap"

	id := chi.URLParam(r, "id")

	swap, ok := s.store.GetSwap(r.Context(), id)
	if !ok {
		s.handleServiceError(w, r, op, &apperrors.NotFoundError{Kind: "swap", ID: id})
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.ActiveSwap{"swap": swap})
}

func (s *Server) updateSwapProgress(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateSwapProgress"

	var p domain.SwapProgress
	if err := s.decode(r.Body, &p); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	swap, err := s.store.UpdateSwapProgress(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.ActiveSwap{"swap": swap})
}

func (s *Server) completeSwap(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.completeSwap"

	var c domain.SwapCompletion
	if err := s.decode(r.Body, &c); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	swap, err := s.store.CompleteSwap(r.Context(), chi.URLParam(r, "id"), c)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.ActiveSwap{"swap": swap})
}

func (s *Server) createReport(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createReport"

	var in domain.NewReport
	if err := s.decode(r.Body, &in); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.store.CreateReport(r.Context(), in)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]domain.Report{"report": report})
}

func (s *Server) listPlatformMessages(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]domain.PlatformMessage{"messages": s.store.ListPlatformMessages(r.Context())})
}

func (s *Server) createSwapRating(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createSwapRating"

	var in domain.NewSwapRating
	if err := s.decode(r.Body, &in); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	rating, err := s.store.CreateSwapRating(r.Context(), in)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]domain.SwapRating{"rating": rating})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.GetStats(r.Context()))
}

func (s *Server) listAllUsers(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]domain.User{"users": s.store.ListUsers(r.Context())})
}

// setVisibility serves both ban (public=false) and unban (public=true).
func (s *Server) setVisibility(public bool) http.HandlerFunc {
	const op = "internal.transport.http.setVisibility"

	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.store.SetUserVisibility(r.Context(), chi.URLParam(r, "id"), public)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		s.respond(w, http.StatusOK, map[string]domain.User{"user": user})
	}
}

func (s *Server) listSwapRequests(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]domain.SwapRequest{"requests": s.store.ListSwapRequests(r.Context())})
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]domain.Report{"reports": s.store.ListReports(r.Context())})
}

func (s *Server) updateReportStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateReportStatus"

	var body reportStatusRequest
	if err := s.decodeAndValidate(r, &body); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	report, err := s.store.UpdateReportStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]domain.Report{"report": report})
}

func (s *Server) createPlatformMessage(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createPlatformMessage"

	var in domain.NewPlatformMessage
	if err := s.decode(r.Body, &in); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	msg, err := s.store.CreatePlatformMessage(r.Context(), in)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]domain.PlatformMessage{"message": msg})
}

func (s *Server) listSwapRatings(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]domain.SwapRating{"ratings": s.store.ListSwapRatings(r.Context())})
}

// exportActivity returns the admin export as JSON, or as an .xlsx workbook
// when format=xlsx.
func (s *Server) exportActivity(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.exportActivity"

	activity := s.store.ExportUserActivity(r.Context())

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		s.respond(w, http.StatusOK, activity)
	case "xlsx":
		raw, err := export.Activity(activity)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="skillswap-activity.xlsx"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(raw); err != nil {
			s.log.Error("failed to write export", slog.String("op", op), sl.Err(err))
		}
	default:
		s.handleServiceError(w, r, op, validation.New("unsupported export format '%s'", format))
	}
}

// respond encodes data as JSON with the given status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, code int, errCode errorCode, message string) {
	s.respond(w, code, errorResponse{Error: errorBody{Code: errCode, Message: message}})
}

// decodeAndValidate deserializes a JSON request body into v and runs the
// validation tags on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError logs err and maps it to an HTTP response. Client errors
// carry the store's message; anything unexpected becomes a bare 500.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, codeValidation, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, codeInvalidRequest, apperrors.ErrInvalidRequest.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusNotFound, codeNotFound, rootMessage(err))
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusConflict, codeDuplicateEmail, rootMessage(err))
	case errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusConflict, codeInvalidTransition, rootMessage(err))
	case errors.Is(err, apperrors.ErrUnauthorized):
		s.respondError(w, http.StatusUnauthorized, codeUnauthorized, apperrors.ErrUnauthorized.Error())
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// rootMessage strips the op prefixes added while the error travelled up and
// returns the message of the typed store error.
func rootMessage(err error) string {
	var (
		notFound   *apperrors.NotFoundError
		duplicate  *apperrors.DuplicateEmailError
		transition *apperrors.InvalidTransitionError
	)

	switch {
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &duplicate):
		return duplicate.Error()
	case errors.As(err, &transition):
		return transition.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return apperrors.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		return apperrors.ErrDuplicateEmail.Error()
	default:
		return apperrors.ErrInvalidTransition.Error()
	}
}
