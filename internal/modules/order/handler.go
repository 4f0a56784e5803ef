package order

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
	either := middleware.RequirePrincipal(domain.PrincipalAdmin, domain.PrincipalCustomer)

	orders := protected.Group("/orders")
	{
		orders.GET("", either, h.List)
		orders.GET("/:id", either, h.Get)
		orders.DELETE("/:id", either, h.Delete)
		orders.POST("", middleware.CustomerOnly(), h.Create)
		orders.PUT("/:id", middleware.CustomerOnly(), h.Update)
		orders.POST("/:id/complete", middleware.AdminOnly(), h.Complete)
	}
}

// Create places an order for the current customer.
// @Summary	Create order
// @Tags	Orders
// @Param	request	body	CreateOrderRequest	true	"Service and quantity"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{}
// @Router	/orders [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Create(c.Request.Context(), middleware.CurrentPrincipal(c).CustomerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	orders, err := h.service.List(c.Request.Context(), middleware.CurrentPrincipal(c), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.service.Get(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.UpdateQuantity(c.Request.Context(), middleware.CurrentPrincipal(c).CustomerID, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.service.Complete(c.Request.Context(), middleware.CurrentPrincipal(c).AdminID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Order deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		response.Error(c, http.StatusBadRequest, "INVALID_PRICE", err.Error())
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
	case errors.Is(err, ErrPortalNotFound):
		response.Error(c, http.StatusNotFound, "PORTAL_NOT_FOUND", "Portal not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot access this order")
	case errors.Is(err, ErrServiceInactive):
		response.Error(c, http.StatusConflict, "SERVICE_INACTIVE", "Service is not available for ordering")
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Order cannot be changed in its current status")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Order operation failed")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return 0, false
	}
	return id, true
}
