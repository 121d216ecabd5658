package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

type assistantService interface {
	Ask(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, error)
}

// AssistantHandler exposes the chat assistant.
type AssistantHandler struct {
	assistant assistantService
}

func NewAssistantHandler(assistant assistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Ask godoc
// @Summary Ask the assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body models.AssistantRequest true "Question"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Security BearerAuth
// @Router /assistant [post]
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req models.AssistantRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.assistant.Ask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply, nil)
}
