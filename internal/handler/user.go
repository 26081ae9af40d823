package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/exlog/exercisetracker/internal/handler/dto"
	"github.com/exlog/exercisetracker/internal/service"
)

// UserHandler handles HTTP requests for users and their exercise logs.
type UserHandler struct {
	svc    *service.TrackerService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.TrackerService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeBody(r, &req, func(form url.Values) {
		req.Username = form.Get("username")
	}); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.Username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// AddExercise handles POST /api/users/{_id}/exercises.
func (h *UserHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	var req dto.AddExerciseRequest
	if err := decodeBody(r, &req, func(form url.Values) {
		req.Description = form.Get("description")
		req.Duration = dto.RawText(form.Get("duration"))
		req.Date = form.Get("date")
	}); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	result, err := h.svc.AddExercise(r.Context(), service.AddExerciseInput{
		UserID:      chi.URLParam(r, "_id"),
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("exercise_logged",
		"user_id", result.User.ID,
		"duration", result.Exercise.Duration,
	)

	writeJSON(w, http.StatusOK, dto.ToExerciseResponse(&result.User, &result.Exercise))
}

// Logs handles GET /api/users/{_id}/logs.
func (h *UserHandler) Logs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.svc.GetLog(r.Context(), service.GetLogInput{
		UserID: chi.URLParam(r, "_id"),
		From:   query.Get("from"),
		To:     query.Get("to"),
		Limit:  query.Get("limit"),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLogResponse(&result.User, result.From, result.To, result.Log))
}

// decodeBody fills dst from a JSON body, or calls fromForm with the parsed
// urlencoded body for any other content type. An empty JSON body is accepted.
func decodeBody(r *http.Request, dst any, fromForm func(url.Values)) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(r.PostForm)
	return nil
}

func (h *UserHandler) writeDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	h.writeError(w, http.StatusBadRequest, "Invalid request body")
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrInvalidDuration):
		h.writeError(w, http.StatusBadRequest, "Invalid duration")
	case errors.Is(err, service.ErrInvalidDate):
		h.writeError(w, http.StatusBadRequest, "Invalid Date")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}
