package handlers

import (
	"errors"
	"net/http"

	"counselconnect/services/booking"
	"counselconnect/services/chat"
	"counselconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational booking flow.
type ChatHandler struct {
	Service chat.ChatService
	Logger  *zap.Logger
}

func NewChatHandler(service chat.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Service: service, Logger: logger}
}

// StartSession handles POST /api/chat/session. The contact email is
// collected here so the dialogue itself only needs name, counselor, window
// and slot.
func (h *ChatHandler) StartSession(c *gin.Context) {
	var input struct {
		UserEmail string `json:"userEmail" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !booking.ValidateEmail(input.UserEmail) {
		utils.JSONError(c, http.StatusBadRequest, "invalid email format", input.UserEmail)
		return
	}

	result, err := h.Service.StartSession(c.Request.Context(), input.UserEmail)
	if err != nil {
		h.Logger.Error("failed to start chat session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": result.Session.SessionID,
		"stage":     result.Session.Stage.String(),
		"replies":   result.Replies,
	})
}

// Advance handles POST /api/chat/session/:sessionID/message.
func (h *ChatHandler) Advance(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Advance(c.Request.Context(), sessionID, input.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "session not found or expired", sessionID)
		case errors.Is(err, chat.ErrSessionBusy):
			utils.JSONError(c, http.StatusConflict, "session is busy", "previous message still processing")
		default:
			h.Logger.Error("failed to advance chat session",
				zap.String("sessionId", sessionID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"stage":     result.Session.Stage.String(),
		"replies":   result.Replies,
	})
}
