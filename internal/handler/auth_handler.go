package handler

import (
	"net/http"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/dto"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/response"
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/pkg/validator"
	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{ID: user.ID, Email: user.Email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(result.RefreshTTL.Seconds()))

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: result.AccessToken,
		User: dto.UserSummary{
			ID:    result.User.ID,
			Email: result.User.Email,
			Role:  string(result.User.Role),
		},
	})
}

// Refresh exchanges the cookie token for a new access token. The cookie
// itself is left untouched.
func (h *AuthHandler) Refresh(c *gin.Context) {
	cookieToken, _ := c.Cookie(refreshCookieName)

	result, err := h.auth.Refresh(c.Request.Context(), cookieToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: result.AccessToken,
		User: dto.UserSummary{
			ID:    result.User.ID,
			Email: result.User.Email,
			Role:  string(result.User.Role),
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	cookieToken, _ := c.Cookie(refreshCookieName)

	if err := h.auth.Logout(c.Request.Context(), cookieToken); err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, value, maxAge, "/", "", false, true)
}
