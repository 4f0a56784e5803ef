package auth

import (
	"errors"
	"log"
	"net/http"

	"crmportal/internal/domain"
	"crmportal/internal/middleware"
	"crmportal/internal/pkg/response"
	"crmportal/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	hub     *EventHub
}

func NewHandler(service *Service, hub *EventHub) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/customer-signup", h.CustomerSignUp)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/customer-login", h.CustomerLogin)
		authGroup.GET("/session/events", h.SessionEvents)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.Me)
	}
}

// SignUp registers an administrator or an employee.
// @Summary	Sign up
// @Tags	Auth
// @Param	request	body	SignUpRequest	true	"Account data"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{}
// @Router	/auth/signup [POST]
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	result, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.writeSignUpError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// CustomerSignUp registers a customer.
// @Summary	Customer sign up
// @Tags	Auth
// @Param	request	body	CustomerSignUpRequest	true	"Customer data"
// @Success	201	{object}	map[string]interface{}
// @Router	/auth/customer-signup [POST]
func (h *Handler) CustomerSignUp(c *gin.Context) {
	var req CustomerSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	result, err := h.service.CustomerSignUp(c.Request.Context(), req)
	if err != nil {
		h.writeSignUpError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login signs in an administrator.
// @Summary	Admin login
// @Tags	Auth
// @Param	request	body	LoginRequest	true	"Credentials"
// @Success	200	{object}	map[string]interface{}
// @Failure	401	{object}	map[string]interface{}
// @Failure	403	{object}	map[string]interface{}
// @Router	/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	h.login(c, domain.PrincipalAdmin)
}

// CustomerLogin signs in a customer.
// @Summary	Customer login
// @Tags	Auth
// @Router	/auth/customer-login [POST]
func (h *Handler) CustomerLogin(c *gin.Context) {
	h.login(c, domain.PrincipalCustomer)
}

func (h *Handler) login(c *gin.Context, want domain.PrincipalKind) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	meta := ClientMeta{UserAgent: c.Request.UserAgent(), IP: c.ClientIP()}
	result, err := h.service.Login(c.Request.Context(), req, want, meta)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrWrongRole):
			response.Error(c, http.StatusForbidden, "WRONG_ROLE", "This account cannot sign in here")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.CurrentIdentity(c)); err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *Handler) Me(c *gin.Context) {
	me, err := h.service.Me(c.Request.Context(), middleware.CurrentIdentity(c), middleware.CurrentPrincipal(c))
	if err != nil {
		if errors.Is(err, ErrSessionInvalid) {
			response.Error(c, http.StatusUnauthorized, "SESSION_REVOKED", "Session is no longer valid")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load current user")
		return
	}

	response.Success(c, http.StatusOK, me)
}

// SessionEvents upgrades to a websocket that streams session changes. Browsers
// cannot set headers on websocket requests, so the token comes in the query.
func (h *Handler) SessionEvents(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "token query parameter is required")
		return
	}

	current, err := h.service.Authenticate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrSessionInvalid) {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load session")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("session_events_upgrade_failed account_id=%d error=%q", current.AccountID, err.Error())
		return
	}

	h.hub.Serve(conn, *current)
}

func (h *Handler) writeSignUpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "This username is already taken")
	case errors.Is(err, ErrPortalNotFound):
		response.Error(c, http.StatusNotFound, "PORTAL_NOT_FOUND", "Portal not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
	}
}
