package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prodline/tpm-service/internal/domain"
	"github.com/prodline/tpm-service/internal/events"
	"github.com/prodline/tpm-service/internal/lifecycle"
	"github.com/prodline/tpm-service/internal/repository"
	apperrors "github.com/prodline/tpm-service/pkg/util/errorutil"
)

type fakeTicketRepo struct {
	tickets map[string]domain.Ticket
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	now := time.Now()
	ticket.ID = fmt.Sprintf("t-%d", r.seq)
	ticket.TicketNumber = domain.FormatTicketNumber(now, r.seq)
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByTicketNumber(_ context.Context, number string) (*domain.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.TicketNumber == number {
			copied := ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.SearchTerm != nil {
			term := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(ticket.TicketNumber), term) &&
				!strings.Contains(strings.ToLower(ticket.Title), term) {
				continue
			}
		}
		result = append(result, ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		result = append(result, ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) Search(ctx context.Context, term string) ([]domain.Ticket, error) {
	return r.ListWithFilter(ctx, repository.TicketFilter{SearchTerm: &term})
}

type fakeLogRepo struct {
	entries []domain.TicketLog
}

func (r *fakeLogRepo) Create(_ context.Context, log *domain.TicketLog) error {
	log.ID = fmt.Sprintf("log-%d", len(r.entries)+1)
	log.CreatedAt = time.Now()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *fakeLogRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketLog, error) {
	var result []domain.TicketLog
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeLineAreaRepo struct {
	areas map[string]domain.LineArea
}

func (r *fakeLineAreaRepo) Create(_ context.Context, area *domain.LineArea) error {
	r.areas[area.ID] = *area
	return nil
}

func (r *fakeLineAreaRepo) Update(_ context.Context, area *domain.LineArea) error {
	if _, ok := r.areas[area.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.areas[area.ID] = *area
	return nil
}

func (r *fakeLineAreaRepo) GetByID(_ context.Context, id string) (*domain.LineArea, error) {
	area, ok := r.areas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := area
	return &copied, nil
}

func (r *fakeLineAreaRepo) ListActive(_ context.Context) ([]domain.LineArea, error) {
	var result []domain.LineArea
	for _, area := range r.areas {
		if area.IsActive {
			result = append(result, area)
		}
	}
	return result, nil
}

type fakeTechnicianRepo struct {
	techs map[string]domain.Technician
}

func (r *fakeTechnicianRepo) Create(_ context.Context, tech *domain.Technician) error {
	r.techs[tech.Name] = *tech
	return nil
}

func (r *fakeTechnicianRepo) Update(_ context.Context, tech *domain.Technician) error {
	r.techs[tech.Name] = *tech
	return nil
}

func (r *fakeTechnicianRepo) GetByID(_ context.Context, id string) (*domain.Technician, error) {
	for _, tech := range r.techs {
		if tech.ID == id {
			copied := tech
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTechnicianRepo) GetByName(_ context.Context, name string) (*domain.Technician, error) {
	tech, ok := r.techs[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := tech
	return &copied, nil
}

func (r *fakeTechnicianRepo) ListActive(_ context.Context) ([]domain.Technician, error) {
	var result []domain.Technician
	for _, tech := range r.techs {
		if tech.IsActive {
			result = append(result, tech)
		}
	}
	return result, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) typesSeen() []events.EventType {
	var types []events.EventType
	for _, event := range d.published {
		types = append(types, event.Type)
	}
	return types
}

func newTestService() (*TicketService, *fakeTicketRepo, *fakeLogRepo, *recordingDispatcher) {
	ticketRepo := newFakeTicketRepo()
	logRepo := &fakeLogRepo{}
	areaRepo := &fakeLineAreaRepo{areas: map[string]domain.LineArea{
		"area-1": {ID: "area-1", Name: "Line 2", IsActive: true},
		"area-2": {ID: "area-2", Name: "Old Warehouse", IsActive: false},
	}}
	techRepo := &fakeTechnicianRepo{techs: map[string]domain.Technician{
		"Siti": {ID: "tech-1", Name: "Siti", IsActive: true},
		"Agus": {ID: "tech-2", Name: "Agus", IsActive: false},
	}}
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:     ticketRepo,
		TicketLogRepo:  logRepo,
		LineAreaRepo:   areaRepo,
		TechnicianRepo: techRepo,
		Dispatcher:     dispatcher,
	})
	return svc, ticketRepo, logRepo, dispatcher
}

func submitInput() TicketSubmitInput {
	return TicketSubmitInput{
		Title:               "Conveyor belt misaligned",
		Description:         "Belt drifts left on line 2",
		Category:            domain.CategoryRepair,
		Priority:            domain.TicketPriorityHigh,
		LineAreaID:          "area-1",
		RequesterName:       "Budi",
		RequesterDepartment: "Production",
	}
}

func TestSubmitTicket(t *testing.T) {
	svc, _, logRepo, dispatcher := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Fatalf("status = %s, want open", ticket.Status)
	}
	if ticket.LineAreaName != "Line 2" {
		t.Fatalf("line area name = %q", ticket.LineAreaName)
	}
	if !strings.HasPrefix(ticket.TicketNumber, "TPM-") {
		t.Fatalf("ticket number = %q", ticket.TicketNumber)
	}
	if len(logRepo.entries) != 1 || logRepo.entries[0].Action != domain.LogActionCreated {
		t.Fatalf("expected one Created log, got %+v", logRepo.entries)
	}
	if logRepo.entries[0].CreatedBy != "Budi" {
		t.Fatalf("log attributed to %q", logRepo.entries[0].CreatedBy)
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventTicketCreated {
		t.Fatalf("expected ticket_created event, got %v", dispatcher.typesSeen())
	}
}

func TestSubmitTicketInactiveLineArea(t *testing.T) {
	svc, _, _, _ := newTestService()
	input := submitInput()
	input.LineAreaID = "area-2"
	_, err := svc.SubmitTicket(context.Background(), input)
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestSubmitTicketDefaultsPriority(t *testing.T) {
	svc, _, _, _ := newTestService()
	input := submitInput()
	input.Priority = ""
	ticket, err := svc.SubmitTicket(context.Background(), input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Fatalf("priority = %s, want medium", ticket.Priority)
	}
}

func TestUpdateTicketRequiresAssignment(t *testing.T) {
	svc, ticketRepo, logRepo, _ := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	logsBefore := len(logRepo.entries)

	status := domain.TicketStatusInProgress
	_, err = svc.UpdateTicket(context.Background(), "admin", ticket.ID, lifecycle.UpdatableFields{Status: &status})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "REQUIRES_ASSIGNMENT" {
		t.Fatalf("expected REQUIRES_ASSIGNMENT, got %v", err)
	}

	stored, _ := ticketRepo.GetByID(context.Background(), ticket.ID)
	if stored.Status != domain.TicketStatusOpen {
		t.Fatalf("rejected update mutated ticket: %s", stored.Status)
	}
	if len(logRepo.entries) != logsBefore {
		t.Fatal("rejected update appended a log entry")
	}
}

func TestUpdateTicketUnknownTechnician(t *testing.T) {
	svc, _, _, _ := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	status := domain.TicketStatusInProgress
	assignee := "Nobody"
	_, err = svc.UpdateTicket(context.Background(), "admin", ticket.ID, lifecycle.UpdatableFields{
		Status:     &status,
		AssignedTo: &assignee,
	})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestUpdateTicketInactiveTechnician(t *testing.T) {
	svc, _, _, _ := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	status := domain.TicketStatusInProgress
	assignee := "Agus"
	_, err = svc.UpdateTicket(context.Background(), "admin", ticket.ID, lifecycle.UpdatableFields{
		Status:     &status,
		AssignedTo: &assignee,
	})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestUpdateTicketSuccess(t *testing.T) {
	svc, ticketRepo, logRepo, dispatcher := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	dispatcher.published = nil

	status := domain.TicketStatusInProgress
	assignee := "Siti"
	notes := "bearings on order"
	updated, err := svc.UpdateTicket(context.Background(), "admin", ticket.ID, lifecycle.UpdatableFields{
		Status:     &status,
		AssignedTo: &assignee,
		Notes:      &notes,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.TicketStatusInProgress || *updated.AssignedTo != "Siti" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Title != ticket.Title {
		t.Fatal("merge clobbered untouched field")
	}

	stored, _ := ticketRepo.GetByID(context.Background(), ticket.ID)
	if stored.Status != domain.TicketStatusInProgress {
		t.Fatal("update not persisted")
	}
	if !stored.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Fatalf("persisted UpdatedAt %v differs from returned %v", stored.UpdatedAt, updated.UpdatedAt)
	}

	last := logRepo.entries[len(logRepo.entries)-1]
	if last.Action != domain.LogActionUpdated || last.CreatedBy != "admin" {
		t.Fatalf("unexpected log entry: %+v", last)
	}

	types := dispatcher.typesSeen()
	want := map[events.EventType]bool{
		events.EventTicketUpdated:       false,
		events.EventTicketStatusChanged: false,
		events.EventTicketAssigned:      false,
	}
	for _, typ := range types {
		want[typ] = true
	}
	for typ, seen := range want {
		if !seen {
			t.Fatalf("missing event %s (got %v)", typ, types)
		}
	}
}

func TestUpdateTicketNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	notes := "x"
	_, err := svc.UpdateTicket(context.Background(), "admin", "missing", lifecycle.UpdatableFields{Notes: &notes})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTrackTickets(t *testing.T) {
	svc, _, _, _ := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	tracked, err := svc.TrackTickets(context.Background(), ticket.TicketNumber)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if len(tracked) != 1 {
		t.Fatalf("tracked %d tickets, want 1", len(tracked))
	}
	if tracked[0].Progress != 10 {
		t.Fatalf("progress = %d, want 10 for open", tracked[0].Progress)
	}

	tracked, err = svc.TrackTickets(context.Background(), "conveyor")
	if err != nil {
		t.Fatalf("track by title: %v", err)
	}
	if len(tracked) != 1 {
		t.Fatalf("title substring match found %d tickets", len(tracked))
	}

	if _, err := svc.TrackTickets(context.Background(), "   "); err == nil {
		t.Fatal("blank search term accepted")
	}
}

func TestGetTicketWithLogs(t *testing.T) {
	svc, _, _, _ := newTestService()
	ticket, err := svc.SubmitTicket(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	status := domain.TicketStatusInProgress
	assignee := "Siti"
	if _, err := svc.UpdateTicket(context.Background(), "admin", ticket.ID, lifecycle.UpdatableFields{
		Status:     &status,
		AssignedTo: &assignee,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, logs, err := svc.GetTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != ticket.ID {
		t.Fatal("wrong ticket returned")
	}
	if len(logs) != 2 {
		t.Fatalf("log count = %d, want 2", len(logs))
	}
	if logs[0].Action != domain.LogActionCreated || logs[1].Action != domain.LogActionUpdated {
		t.Fatalf("log order wrong: %+v", logs)
	}
}
