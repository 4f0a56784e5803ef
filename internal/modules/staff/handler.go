package staff

import (
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
	protected.GET("/employees", middleware.AdminOnly(), h.List)
}

func (h *Handler) List(c *gin.Context) {
	employees, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("staff: list failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list employees")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employees": employees})
}
