package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxhub_backend/internal/services"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/internal/validator"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(v *validator.Validator, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    NewBaseHandler(v),
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/conversations", h.GetConversations)
	r.GET("/conversations/:counterpartId", h.GetConversation)
	r.DELETE("/conversations/:counterpartId", h.DeleteConversation)
	r.GET("/unread-count", h.GetUnreadCount)
	r.POST("", h.SendMessage)
}

func (h *MessageHandler) GetConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.messageService.GetConversations(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetConversation returns the history with one counterpart and marks
// every unread incoming message in it as read.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.messageService.GetConversation(userID, c.Param("counterpartId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MessageHandler) DeleteConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.messageService.DeleteConversation(userID, c.Param("counterpartId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted"})
}

func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.messageService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.messageService.SendMessage(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
