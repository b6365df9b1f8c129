package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inmueblesv-catalog/internal/middleware"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone"`
	PhotoURL    string `json:"photoURL"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Create an email/password account and return a signed token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body registerRequest true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
		Password:    req.Password,
	}
	token, err := h.userService.Register(c.Request.Context(), user)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":     token.Token,
		"expiresAt": token.ExpiresAt,
	})
}

// Login godoc
// @Summary Sign in
// @Description Exchange email/password credentials for a signed token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token.Token,
		"expiresAt": token.ExpiresAt,
	})
}

// Session godoc
// @Summary Current session
// @Description Return the identity behind the presented token
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Identity
// @Failure 401 {object} map[string]string
// @Router /session [get]
func (h *UserHandler) Session(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, identity)
}
