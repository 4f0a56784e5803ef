package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"crmportal/internal/domain"
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
	services := protected.Group("/services")
	{
		services.GET("", middleware.RequirePrincipal(domain.PrincipalAdmin, domain.PrincipalCustomer), h.List)
		services.GET("/:id", middleware.RequirePrincipal(domain.PrincipalAdmin, domain.PrincipalCustomer), h.Get)
		services.POST("", middleware.AdminOnly(), h.Create)
		services.PUT("/:id", middleware.AdminOnly(), h.Update)
		services.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}
}

// List returns services by name, filtered by portal_id and active.
// @Summary	List services
// @Tags	Catalog
// @Param	portal_id	query	int	false	"Portal filter"
// @Param	active	query	bool	false	"Active services only"
// @Router	/services [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	services, err := h.service.List(c.Request.Context(), middleware.CurrentPrincipal(c), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	svc, err := h.service.Get(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.Create(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.Update(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, svc)
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

	response.Success(c, http.StatusOK, gin.H{"message": "Service deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		response.Error(c, http.StatusBadRequest, "INVALID_PRICE", err.Error())
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
	case errors.Is(err, ErrPortalNotFound):
		response.Error(c, http.StatusNotFound, "PORTAL_NOT_FOUND", "Portal not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this service's portal")
	case errors.Is(err, ErrServiceHasOrders):
		response.Error(c, http.StatusConflict, "SERVICE_HAS_ORDERS", "Service has orders and cannot be deleted")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Service operation failed")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return 0, false
	}
	return id, true
}
