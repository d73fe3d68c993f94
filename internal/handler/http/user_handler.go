package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/wiczolek/react-backend/internal/user"
)

// UserRequest is the payload for create and update. Pointer fields distinguish
// "absent" from a legitimate zero value: lastName must be present but may be
// empty, isActive must be present but may be false.
type UserRequest struct {
	Login       string     `json:"login" validate:"required"`
	FirstName   string     `json:"firstName" validate:"required"`
	LastName    *string    `json:"lastName" validate:"required"`
	DateOfBirth *user.Date `json:"dateOfBirth"`
	IsActive    *bool      `json:"isActive" validate:"required"`
}

func (req UserRequest) toUser(id int64) *user.User {
	u := &user.User{
		ID:          id,
		Login:       req.Login,
		FirstName:   req.FirstName,
		DateOfBirth: req.DateOfBirth,
		IsActive:    *req.IsActive,
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}

	return u
}

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users", h.handleListUsers)
	router.Post("/users", h.handleCreateUser)
	router.Post("/users/", h.handleCreateUser)
	router.Get("/users/{id}", h.handleGetUserByID)
	router.Put("/users/{id}", h.handleUpdateUser)
	router.Delete("/users/{id}", h.handleDeleteUser)
}

// handleListUsers returns all users, or only those matching the login filter
// when one is given. An empty result is a valid 200 with an empty array.
func (h *UserHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	login := r.URL.Query().Get("login")

	var (
		users []user.User
		err   error
	)
	if login != "" {
		users, err = h.service.FindByLogin(r.Context(), login)
	} else {
		users, err = h.service.ListUsers(r.Context())
	}
	if err != nil {
		log.Error().Err(err).Str("login", login).Msg("Failed to list users via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	if users == nil {
		users = make([]user.User, 0)
	}

	respondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleGetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	foundUser, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithNotFound(w, fmt.Sprintf("Id: %d", id))
			return
		}

		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user by id via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to get user by id")
		return
	}

	respondWithJSON(w, http.StatusOK, foundUser)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	requestPayload, ok := h.decodeUserRequest(w, r)
	if !ok {
		return
	}

	createdUser, err := h.service.CreateUser(r.Context(), requestPayload.toUser(0))
	if err != nil {
		if errors.Is(err, user.ErrLoginExists) {
			respondWithError(w, http.StatusBadRequest, "Login: "+requestPayload.Login)
			return
		}

		log.Error().Err(err).Str("login", requestPayload.Login).Msg("Failed to create user via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to create user")
		return
	}

	respondWithJSON(w, http.StatusOK, createdUser)
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	requestPayload, ok := h.decodeUserRequest(w, r)
	if !ok {
		return
	}

	updatedUser, err := h.service.UpdateUser(r.Context(), requestPayload.toUser(id))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithNotFound(w, fmt.Sprintf("Id: %d", id))
			return
		}
		if errors.Is(err, user.ErrLoginExists) {
			respondWithError(w, http.StatusBadRequest, "Login: "+requestPayload.Login)
			return
		}

		log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, updatedUser)
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithNotFound(w, fmt.Sprintf("Id: %d", id))
			return
		}

		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to delete user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// decodeUserRequest decodes and validates the body, writing the error response
// itself when the payload is structurally invalid.
func (h *UserHandler) decodeUserRequest(w http.ResponseWriter, r *http.Request) (*UserRequest, bool) {
	var requestPayload UserRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithError(w, http.StatusBadRequest, "Validation failed: "+formatValidationErrors(validationErrors))
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return nil, false
	}

	return &requestPayload, true
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("user_id", idParam).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}

	return id, true
}
