package handlers

import (
	"net/http"

	"counselconnect/services/calendar"
	"counselconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler runs the OAuth consent flow for onboarding a counselor
// calendar. The resulting refresh token goes into the counselor roster
// configuration.
type AuthHandler struct {
	Creds  *calendar.OAuthCredentialProvider
	Logger *zap.Logger
}

func NewAuthHandler(creds *calendar.OAuthCredentialProvider, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Creds: creds, Logger: logger}
}

// ConsentURL handles GET /auth/url.
func (h *AuthHandler) ConsentURL(c *gin.Context) {
	state := c.DefaultQuery("state", "onboarding")
	c.JSON(http.StatusOK, gin.H{"url": h.Creds.AuthCodeURL(state)})
}

// Callback handles GET /auth/callback.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing authorization code", "")
		return
	}

	token, err := h.Creds.Exchange(c.Request.Context(), code)
	if err != nil {
		h.Logger.Error("oauth code exchange failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "authentication failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Authentication successful",
		"refreshToken": token.RefreshToken,
	})
}
