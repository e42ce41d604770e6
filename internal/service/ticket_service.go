package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prodline/tpm-service/internal/domain"
	"github.com/prodline/tpm-service/internal/events"
	"github.com/prodline/tpm-service/internal/lifecycle"
	"github.com/prodline/tpm-service/internal/repository"
	apperrors "github.com/prodline/tpm-service/pkg/util/errorutil"
)

// TicketService coordinates maintenance ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	logs        repository.TicketLogRepository
	lineAreas   repository.LineAreaRepository
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	TicketLogRepo  repository.TicketLogRepository
	LineAreaRepo   repository.LineAreaRepository
	TechnicianRepo repository.TechnicianRepository
	Dispatcher     events.Dispatcher
}

// TicketSubmitInput describes the public submission payload.
type TicketSubmitInput struct {
	Title               string
	Description         string
	Category            domain.TicketCategory
	Priority            domain.TicketPriority
	LineAreaID          string
	RequesterName       string
	RequesterDepartment string
	RequesterContact    *string
	BeforePhotos        []string
}

// TrackedTicket pairs a ticket with its derived progress percentage for the
// public tracking view.
type TrackedTicket struct {
	Ticket   domain.Ticket
	Progress int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		logs:        deps.TicketLogRepo,
		lineAreas:   deps.LineAreaRepo,
		technicians: deps.TechnicianRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// SubmitTicket creates a new ticket from the public submission form. Tickets
// always start open; the ticket number is generated by the repository at
// insert time.
func (s *TicketService) SubmitTicket(ctx context.Context, input TicketSubmitInput) (*domain.Ticket, error) {
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	area, err := s.lineAreas.GetByID(ctx, input.LineAreaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("line area", map[string]any{"line_area_id": input.LineAreaID})
		}
		return nil, apperrors.MapError(err)
	}
	if !area.IsActive {
		return nil, apperrors.NewConflict("line area inactive", map[string]any{"line_area_id": area.ID})
	}

	ticket := &domain.Ticket{
		Title:               strings.TrimSpace(input.Title),
		Description:         strings.TrimSpace(input.Description),
		Category:            input.Category,
		Priority:            input.Priority,
		Status:              domain.TicketStatusOpen,
		BeforePhotos:        input.BeforePhotos,
		RequesterName:       strings.TrimSpace(input.RequesterName),
		RequesterDepartment: strings.TrimSpace(input.RequesterDepartment),
		RequesterContact:    input.RequesterContact,
		LineAreaName:        area.Name,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.appendLog(ctx, ticket.ID, domain.LogActionCreated,
		fmt.Sprintf("Ticket %s submitted for %s", ticket.TicketNumber, ticket.LineAreaName),
		ticket.RequesterName)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    ticket.RequesterName,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			Category:     ticket.Category,
			Priority:     ticket.Priority,
			LineAreaName: ticket.LineAreaName,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// UpdateTicket applies an admin update through the lifecycle rules, persists
// the merged record, and appends an "Updated" audit entry attributed to the
// acting admin.
//
// The sequence is read-merge-write with no version check: two concurrent
// updates against the same ticket race and the later write wins. This
// mirrors the behavior of the original system and is accepted as best-effort
// semantics.
func (s *TicketService) UpdateTicket(ctx context.Context, actorName, ticketID string, update lifecycle.UpdatableFields) (*domain.Ticket, error) {
	current, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if update.Status != nil && !domain.ValidStatus(*update.Status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *update.Status})
	}
	if update.Priority != nil && !domain.ValidPriority(*update.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": *update.Priority})
	}
	if update.Category != nil && !domain.ValidCategory(*update.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": *update.Category})
	}
	if update.AssignedTo != nil && domain.IsAssigned(update.AssignedTo) {
		if err := s.checkTechnician(ctx, *update.AssignedTo); err != nil {
			return nil, err
		}
	}

	next, err := lifecycle.ApplyUpdate(*current, update, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrRequiresAssignment):
			return nil, apperrors.NewRequiresAssignment()
		case errors.Is(err, lifecycle.ErrRejectionReasonRequired):
			return nil, apperrors.NewRejectionReasonRequired()
		default:
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.tickets.Update(ctx, &next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	s.appendLog(ctx, next.ID, domain.LogActionUpdated,
		fmt.Sprintf("Ticket %s updated", next.TicketNumber), actorName)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: next.ID,
		Actor:    actorName,
		Payload:  events.TicketUpdatedPayload{TicketNumber: next.TicketNumber},
	})
	if current.Status != next.Status {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: next.ID,
			Actor:    actorName,
			Payload: events.TicketStatusChangedPayload{
				TicketNumber: next.TicketNumber,
				OldStatus:    current.Status,
				NewStatus:    next.Status,
			},
		})
	}
	if !equalAssignee(current.AssignedTo, next.AssignedTo) {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: next.ID,
			Actor:    actorName,
			Payload: events.TicketAssignedPayload{
				TicketNumber: next.TicketNumber,
				AssignedTo:   next.AssignedTo,
			},
		})
	}
	return &next, nil
}

// GetTicket fetches a ticket with its audit trail, oldest entry first.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, []domain.TicketLog, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	logs, err := s.logs.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, logs, nil
}

// ListTickets returns tickets matching the admin filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// TrackTickets matches tickets by ticket-number or title substring and
// decorates each with its progress percentage.
func (s *TicketService) TrackTickets(ctx context.Context, term string) ([]TrackedTicket, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewValidationError("search term required", nil)
	}
	tickets, err := s.tickets.Search(ctx, term)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tracked := make([]TrackedTicket, 0, len(tickets))
	for _, ticket := range tickets {
		tracked = append(tracked, TrackedTicket{
			Ticket:   ticket,
			Progress: lifecycle.Progress(ticket.Status),
		})
	}
	return tracked, nil
}

func (s *TicketService) checkTechnician(ctx context.Context, name string) error {
	tech, err := s.technicians.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("assignee is not a known technician", map[string]any{"assigned_to": name})
		}
		return apperrors.MapError(err)
	}
	if !tech.IsActive {
		return apperrors.NewConflict("technician inactive", map[string]any{"assigned_to": name})
	}
	return nil
}

// appendLog writes the audit entry for a lifecycle event. Log persistence is
// best-effort relative to the ticket write; the collaborator offers no
// cross-table transaction here.
func (s *TicketService) appendLog(ctx context.Context, ticketID string, action domain.LogAction, description, createdBy string) {
	if s.logs == nil {
		return
	}
	entry := &domain.TicketLog{
		TicketID:    ticketID,
		Action:      action,
		Description: description,
		CreatedBy:   createdBy,
	}
	_ = s.logs.Create(ctx, entry)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func equalAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
