package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"streambay/internal/usecase"
	"streambay/pkg/response"
)

const webhookSecretHeader = "X-Zendesk-Webhook-Secret"

type WebhookHandler struct {
	webhookUseCase *usecase.WebhookUseCase
}

func NewWebhookHandler(webhookUseCase *usecase.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		webhookUseCase: webhookUseCase,
	}
}

// Zendesk sends ticket_id as a number; manual deliveries and tests often send
// a string. Accept both.
type ticketCommentPayload struct {
	TicketID    interface{} `json:"ticket_id"`
	CommentBody string      `json:"comment_body"`
	AuthorName  string      `json:"author_name"`
}

func normalizeTicketID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}

// HandleTicketComment receives ticket-comment-created notifications. Only a
// bad shared secret is rejected; every other outcome is acknowledged with 200
// so the provider does not redeliver forever.
func (h *WebhookHandler) HandleTicketComment(c echo.Context) error {
	if err := h.webhookUseCase.VerifySecret(c.Request().Header.Get(webhookSecretHeader)); err != nil {
		return response.Error(c, err)
	}

	var payload ticketCommentPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, &usecase.WebhookResult{
			Status:  "ignored",
			Message: "Malformed payload",
		})
	}

	result := h.webhookUseCase.RelayTicketComment(c.Request().Context(), usecase.TicketCommentEvent{
		TicketID:    normalizeTicketID(payload.TicketID),
		CommentBody: payload.CommentBody,
		AuthorName:  payload.AuthorName,
	})

	return c.JSON(http.StatusOK, result)
}
