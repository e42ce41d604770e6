package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/prodline/tpm-service/internal/api/dto"
	"github.com/prodline/tpm-service/internal/domain"
	"github.com/prodline/tpm-service/internal/service"
	apperrors "github.com/prodline/tpm-service/pkg/util/errorutil"
)

// TicketsHandler manages public submission and tracking endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// SubmitTicket POST /tickets.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}
	if strings.TrimSpace(req.RequesterName) == "" || strings.TrimSpace(req.RequesterDepartment) == "" {
		return apperrors.NewValidationError("requester_name and requester_department required", nil)
	}
	if req.LineAreaID == "" {
		return apperrors.NewValidationError("line_area_id required", nil)
	}
	if len(req.BeforePhotos) > domain.MaxPhotosPerList {
		return apperrors.NewValidationError("too many photos", map[string]any{"max": domain.MaxPhotosPerList})
	}

	ticket, err := h.service.SubmitTicket(c.Context(), service.TicketSubmitInput{
		Title:               req.Title,
		Description:         req.Description,
		Category:            req.Category,
		Priority:            req.Priority,
		LineAreaID:          req.LineAreaID,
		RequesterName:       req.RequesterName,
		RequesterDepartment: req.RequesterDepartment,
		RequesterContact:    req.RequesterContact,
		BeforePhotos:        req.BeforePhotos,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, nil)})
}

// TrackTickets GET /tickets/track?q=.
func (h *TicketsHandler) TrackTickets(c *fiber.Ctx) error {
	tracked, err := h.service.TrackTickets(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	items := make([]dto.TrackedTicketResponse, 0, len(tracked))
	for i := range tracked {
		items = append(items, dto.TrackedTicketResponse{
			TicketSummary: ticketSummary(&tracked[i].Ticket),
			Progress:      tracked[i].Progress,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Title:        ticket.Title,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		AssignedTo:   ticket.AssignedTo,
		LineAreaName: ticket.LineAreaName,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, logs []domain.TicketLog) dto.TicketDetailResponse {
	logResponses := make([]dto.TicketLogResponse, 0, len(logs))
	for _, entry := range logs {
		logResponses = append(logResponses, dto.TicketLogResponse{
			ID:          entry.ID,
			Action:      entry.Action,
			Description: entry.Description,
			CreatedBy:   entry.CreatedBy,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return dto.TicketDetailResponse{
		ID:                  ticket.ID,
		TicketNumber:        ticket.TicketNumber,
		Title:               ticket.Title,
		Description:         ticket.Description,
		Category:            ticket.Category,
		Priority:            ticket.Priority,
		Status:              ticket.Status,
		AssignedTo:          ticket.AssignedTo,
		Notes:               ticket.Notes,
		RejectionReason:     ticket.RejectionReason,
		BeforePhotos:        ticket.BeforePhotos,
		AfterPhotos:         ticket.AfterPhotos,
		RequesterName:       ticket.RequesterName,
		RequesterDepartment: ticket.RequesterDepartment,
		RequesterContact:    ticket.RequesterContact,
		LineAreaName:        ticket.LineAreaName,
		CreatedAt:           ticket.CreatedAt,
		UpdatedAt:           ticket.UpdatedAt,
		CompletedAt:         ticket.CompletedAt,
		Logs:                logResponses,
	}
}
