package handlers

import (
	"net/http"

	"folio/internal/services"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type AssistantHandler struct {
	assistant *services.AssistantService
	log       *logger.Logger
}

func NewAssistantHandler(assistant *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, log: logger.New("AssistantHandler")}
}

type ChatRequest struct {
	Messages []services.ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

// Chat forwards the conversation to the model and returns its reply.
// Upstream failures degrade to a canned offline reply, never an error
// status, so the terminal UI stays conversational.
// @Summary Chat with the assistant
// @Description Send the conversation history and receive the next reply
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Conversation history"
// @Success 200 {object} map[string]string "Assistant reply"
// @Failure 400 {object} map[string]string "Validation error"
// @Router /assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	reply := h.assistant.Complete(c.Request().Context(), req.Messages)

	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
