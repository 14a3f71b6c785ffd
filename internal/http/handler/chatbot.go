package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/service"
)

type ChatbotHandler struct {
	chatbotService service.ChatbotService
}

func NewChatbotHandler(chatbotService service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

func (h *ChatbotHandler) Extract(c *gin.Context) {
	var req dto.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrEmptyMessage, "")
		return
	}

	reply, err := h.chatbotService.Extract(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err, "failed to process message")
		return
	}

	c.JSON(http.StatusOK, dto.ChatbotResponse{
		Message: reply.Message,
		Extraction: dto.ChatbotExtraction{
			Recipient:     reply.Extraction.Recipient,
			Description:   reply.Extraction.Description,
			SuggestedName: reply.Extraction.SuggestedName,
		},
	})
}

type PinningHandler struct {
	pinningService service.PinningService
}

func NewPinningHandler(pinningService service.PinningService) *PinningHandler {
	return &PinningHandler{pinningService: pinningService}
}

func (h *PinningHandler) SignedURL(c *gin.Context) {
	signed, err := h.pinningService.SignedURL(c.Request.Context(), c.Query("cid"))
	if err != nil {
		respondError(c, err, "failed to sign gateway url")
		return
	}

	c.JSON(http.StatusOK, dto.SignedURLResponse{
		URL:       signed,
		ExpiresAt: time.Now().Add(service.SignedURLTTL).UTC(),
	})
}

func (h *PinningHandler) UserImages(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	images, err := h.pinningService.UserImages(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list pinned images")
		return
	}

	c.JSON(http.StatusOK, dto.ToPinnedImagesResponse(images))
}
