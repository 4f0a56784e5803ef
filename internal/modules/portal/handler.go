package portal

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes expects a group that already resolved the principal.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/portals/directory", h.Directory)

	portals := protected.Group("/portals", middleware.AdminOnly())
	{
		portals.POST("", h.Create)
		portals.GET("", h.List)
		portals.GET("/:id", h.Get)
		portals.GET("/:id/view", h.View)
		portals.PUT("/:id", h.Update)
		portals.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) List(c *gin.Context) {
	portals, err := h.service.List(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"portals": portals})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) View(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.View(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Portal deleted"})
}

// Directory lists every portal by name for the order screen.
func (h *Handler) Directory(c *gin.Context) {
	refs, err := h.service.Directory(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"portals": refs})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidName):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrPortalNotFound):
		response.Error(c, http.StatusNotFound, "PORTAL_NOT_FOUND", "Portal not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this portal")
	case errors.Is(err, ErrPortalHasServices):
		response.Error(c, http.StatusConflict, "PORTAL_HAS_SERVICES", "Delete or move the portal's services first")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Portal operation failed")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid portal ID")
		return 0, false
	}
	return id, true
}
