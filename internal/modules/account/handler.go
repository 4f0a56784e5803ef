package account

import (
	"errors"
	"net/http"

	"crmportal/internal/middleware"
	"crmportal/internal/pkg/response"
	"crmportal/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/account", h.Get)
	protected.PUT("/account", h.Update)
}

// Get handles GET /api/v1/account
// @Summary	Get account settings
// @Tags	Account
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Failure	404	{object}	map[string]interface{}
// @Router	/account [get]
func (h *Handler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// Update handles PUT /api/v1/account
// @Summary	Update account settings
// @Tags	Account
// @Security	BearerAuth
// @Param	request	body	UpdateRequest	true	"Editable fields"
// @Success	200	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{}
// @Router	/account [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	profile, err := h.service.Update(c.Request.Context(), middleware.CurrentPrincipal(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	case errors.Is(err, ErrBlankField):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and names cannot be blank")
	case errors.Is(err, ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "Username already taken")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Account operation failed")
	}
}
