package principal

import (
	"net/http"

	"crmportal/internal/middleware"
	"crmportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/principal", h.Get)
}

// Get returns the principal resolved for the current session.
func (h *Handler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, middleware.CurrentPrincipal(c))
}
