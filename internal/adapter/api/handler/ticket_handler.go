package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"streambay/internal/usecase"
	"streambay/pkg/errors"
	"streambay/pkg/response"
)

type TicketHandler struct {
	supportUseCase *usecase.SupportTicketUseCase
}

func NewTicketHandler(supportUseCase *usecase.SupportTicketUseCase) *TicketHandler {
	return &TicketHandler{
		supportUseCase: supportUseCase,
	}
}

type postCommentRequest struct {
	Message      string `json:"message" validate:"required"`
	CustomerID   string `json:"customerId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
}

func ticketIDParam(c echo.Context) (int64, error) {
	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.BadRequest("Invalid ticket id", err)
	}
	return ticketID, nil
}

// ListTickets returns every not-yet-solved ticket for the support dashboard.
func (h *TicketHandler) ListTickets(c echo.Context) error {
	tickets, err := h.supportUseCase.ListOpenTickets(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"tickets": tickets})
}

// GetTicketComments returns a ticket's comments plus the requester id.
func (h *TicketHandler) GetTicketComments(c echo.Context) error {
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	comments, err := h.supportUseCase.TicketComments(c.Request().Context(), ticketID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comments)
}

// PostComment relays a customer-typed message onto the ticket.
func (h *TicketHandler) PostComment(c echo.Context) error {
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req postCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.supportUseCase.PostCustomerComment(c.Request().Context(), usecase.PostCommentInput{
		TicketID:     ticketID,
		Message:      req.Message,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
