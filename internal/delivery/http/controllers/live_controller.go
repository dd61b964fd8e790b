package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"liveagenda/internal/delivery/http/helpers"
	"liveagenda/internal/delivery/http/middleware"
	"liveagenda/internal/domain"
)

// Accepted layouts for the live date field.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	timeLayout     = "15:04:05"
)

// CreateLiveRequest is the request body for POST /lives.
type CreateLiveRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reminder    int    `json:"reminder"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateLiveRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Description == "" {
		errs = append(errs, "description is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := parseLiveDate(c.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
	}
	if c.Time == "" {
		errs = append(errs, "time is required")
	} else if _, err := time.Parse(timeLayout, c.Time); err != nil {
		errs = append(errs, "time must be HH:MM:SS")
	}
	if c.Reminder < 0 {
		errs = append(errs, "reminder must be >= 0")
	}
	return errs
}

func parseLiveDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

// ListLivesResponse is the response body for live listings.
// swagger:model ListLivesResponse
type ListLivesResponse struct {
	Total   int            `json:"total"`
	Results []*domain.Live `json:"results"`
}

type LiveController struct {
	Logger  *slog.Logger
	Service domain.LiveService
}

func NewLiveController(logger *slog.Logger, svc domain.LiveService) *LiveController {
	return &LiveController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateLive godoc
// @Summary Schedule a new live
// @Description Creates a live event. The authenticated user becomes the creator; any authenticated user may create lives.
// @Tags lives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param live body CreateLiveRequest true "Live data"
// @Success 201 {object} helpers.IDMessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /lives [post]
func (c *LiveController) CreateLive(w http.ResponseWriter, r *http.Request) {
	var req CreateLiveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	date, _ := parseLiveDate(req.Date)
	now := time.Now()
	live := domain.NewLive(req.Title, req.Description, date, req.Time, req.Reminder, userID, now, now)
	if err := c.Service.CreateLive(r.Context(), userID, live); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, helpers.IDMessageResponse{ID: live.ID, Message: "live created"})
}

// GetLives godoc
// @Summary List active lives
// @Description Paginated listing of all active lives. The optional search parameter matches title or description case-insensitively.
// @Tags lives
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page" default(0)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Param search query string false "Free-text filter"
// @Success 200 {object} ListLivesResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /lives [get]
func (c *LiveController) GetLives(w http.ResponseWriter, r *http.Request) {
	params, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	lives, total, err := c.Service.ListLives(r.Context(), r.URL.Query().Get("search"), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListLivesResponse{Total: total, Results: lives})
}

// GetUserLives godoc
// @Summary List a user's lives
// @Description Same as GET /lives but scoped to lives created by the path user. A user with no lives gets an empty page, not an error.
// @Tags lives
// @Produce json
// @Security BearerAuth
// @Param userID path string true "Creator user ID"
// @Param page query int false "Zero-based page" default(0)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Param search query string false "Free-text filter"
// @Success 200 {object} ListLivesResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /users/{userID}/lives [get]
func (c *LiveController) GetUserLives(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	params, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	lives, total, err := c.Service.ListUserLives(r.Context(), userID, r.URL.Query().Get("search"), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListLivesResponse{Total: total, Results: lives})
}

// DeleteLive godoc
// @Summary Soft-delete a live
// @Description Marks the live inactive. Deleting an already-deleted live is a conflict, not a no-op.
// @Tags lives
// @Produce json
// @Security BearerAuth
// @Param liveID path string true "Live ID"
// @Success 200 {object} helpers.IDMessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /lives/{liveID} [delete]
func (c *LiveController) DeleteLive(w http.ResponseWriter, r *http.Request) {
	liveID := r.PathValue("liveID")
	if liveID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing liveID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	live, err := c.Service.DeleteLive(r.Context(), userID, liveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "live not found")
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "live already deleted")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.IDMessageResponse{ID: live.ID, Message: "live deleted"})
}

// SaveLive godoc
// @Summary Save a live
// @Description Bookmarks the live for the authenticated user. Saving twice is idempotent and never duplicates the bookmark.
// @Tags lives
// @Produce json
// @Security BearerAuth
// @Param liveID path string true "Live ID"
// @Success 201 {object} helpers.IDMessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /lives/{liveID}/save-live [put]
func (c *LiveController) SaveLive(w http.ResponseWriter, r *http.Request) {
	liveID := r.PathValue("liveID")
	if liveID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing liveID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	edge, err := c.Service.SaveLive(r.Context(), userID, liveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "live not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, helpers.IDMessageResponse{ID: edge.ID, Message: "live saved"})
}

// UnsaveLive godoc
// @Summary Unsave a live
// @Description Removes the authenticated user's bookmark. A live that was never saved (or is already unsaved) is not found.
// @Tags lives
// @Produce json
// @Security BearerAuth
// @Param liveID path string true "Live ID"
// @Success 200 {object} helpers.IDMessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /lives/{liveID}/unsave-live [put]
func (c *LiveController) UnsaveLive(w http.ResponseWriter, r *http.Request) {
	liveID := r.PathValue("liveID")
	if liveID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing liveID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	edge, err := c.Service.UnsaveLive(r.Context(), userID, liveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "live not saved")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.IDMessageResponse{ID: edge.ID, Message: "live unsaved"})
}
