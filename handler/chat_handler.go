package handler

import (
	"lingolink/middleware"
	"lingolink/service"
	"lingolink/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc *service.ChatService
}

func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// GetToken issues a chat-provider token for the caller.
func (h *ChatHandler) GetToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	token, err := h.chatSvc.Token(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"token": token})
}
