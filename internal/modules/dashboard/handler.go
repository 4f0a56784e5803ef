package dashboard

import (
	"errors"
	"log"
	"net/http"

	"crmportal/internal/middleware"
	"crmportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/dashboard", middleware.AdminOnly(), h.Admin)
	protected.GET("/customer-dashboard", middleware.CustomerOnly(), h.Customer)
}

// Admin returns the administrator dashboard.
// @Summary	Admin dashboard
// @Tags	Dashboard
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Router	/dashboard [get]
func (h *Handler) Admin(c *gin.Context) {
	d, err := h.service.Admin(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Customer(c *gin.Context) {
	d, err := h.service.Customer(c.Request.Context(), middleware.CurrentPrincipal(c).CustomerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrProfileNotFound) {
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
		return
	}
	log.Printf("dashboard: path=%s err=%v", c.FullPath(), err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
}
