package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"liveagenda/internal/delivery/http/helpers"
	"liveagenda/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	ProfilePhoto *string `json:"profile_photo"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateUserRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(c.Email) {
		errs = append(errs, "email is invalid")
	}
	if c.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthenticateUserRequest is the request body for POST /users/auth.
type AuthenticateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (a AuthenticateUserRequest) Validate() []string {
	var errs []string
	if a.Email == "" {
		errs = append(errs, "email is required")
	}
	if a.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthenticateUserResponse is the response body for POST /users/auth.
// swagger:model AuthenticateUserResponse
type AuthenticateUserResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUser godoc
// @Summary Register a user
// @Description Creates a user account and sends a welcome email. Email must be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User data"
// @Success 201 {object} helpers.IDMessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), req.Name, req.Email, req.Password, req.ProfilePhoto)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already in use")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, helpers.IDMessageResponse{ID: user.ID, Message: "user created"})
}

// AuthenticateUser godoc
// @Summary Authenticate a user
// @Description Verifies email and password and returns a Bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body AuthenticateUserRequest true "Credentials"
// @Success 200 {object} AuthenticateUserResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /users/auth [post]
func (c *UserController) AuthenticateUser(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid email or password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, AuthenticateUserResponse{Token: token, User: user})
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /users/{userID} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}
