package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/prodline/tpm-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TicketStatus) *domain.TicketStatus { return &s }

func baseTicket() domain.Ticket {
	created := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	return domain.Ticket{
		ID:                  "t-1",
		TicketNumber:        "TPM-20250801-0001",
		Title:               "Conveyor belt misaligned",
		Description:         "Belt drifts left on line 2",
		Category:            domain.CategoryRepair,
		Priority:            domain.TicketPriorityHigh,
		Status:              domain.TicketStatusOpen,
		RequesterName:       "Budi",
		RequesterDepartment: "Production",
		LineAreaName:        "Line 2",
		CreatedAt:           created,
		UpdatedAt:           created,
	}
}

func TestApplyUpdateRequiresAssignment(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		update UpdatableFields
	}{
		{
			name:   "status change without assignee",
			update: UpdatableFields{Status: statusPtr(domain.TicketStatusInProgress)},
		},
		{
			name: "status change with empty assignee",
			update: UpdatableFields{
				Status:     statusPtr(domain.TicketStatusPendingParts),
				AssignedTo: strPtr(""),
			},
		},
		{
			name: "status change with unassigned sentinel",
			update: UpdatableFields{
				Status:     statusPtr(domain.TicketStatusInProgress),
				AssignedTo: strPtr(domain.UnassignedMarker),
			},
		},
		{
			name: "other fields changed simultaneously",
			update: UpdatableFields{
				Status:   statusPtr(domain.TicketStatusClosed),
				Priority: prioPtr(domain.TicketPriorityLow),
				Notes:    strPtr("done"),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyUpdate(baseTicket(), tc.update, now)
			if !errors.Is(err, ErrRequiresAssignment) {
				t.Fatalf("expected ErrRequiresAssignment, got %v", err)
			}
		})
	}
}

func prioPtr(p domain.TicketPriority) *domain.TicketPriority { return &p }

func TestApplyUpdateOpenNeverRequiresAssignment(t *testing.T) {
	now := time.Now()
	updated, err := ApplyUpdate(baseTicket(), UpdatableFields{
		Status: statusPtr(domain.TicketStatusOpen),
		Notes:  strPtr("checked"),
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AssignedTo != nil {
		t.Fatalf("expected assignee untouched, got %v", *updated.AssignedTo)
	}
}

func TestApplyUpdateMergeSemantics(t *testing.T) {
	now := time.Now()
	current := baseTicket()
	updated, err := ApplyUpdate(current, UpdatableFields{Notes: strPtr("x")}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TicketStatusOpen {
		t.Fatalf("status changed: %s", updated.Status)
	}
	if updated.AssignedTo != nil {
		t.Fatal("assignee changed")
	}
	if updated.Notes == nil || *updated.Notes != "x" {
		t.Fatal("notes not applied")
	}
	if updated.Title != current.Title || updated.Priority != current.Priority {
		t.Fatal("untouched fields modified")
	}
	if !updated.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt not refreshed: %v", updated.UpdatedAt)
	}
}

func TestApplyUpdateIdempotent(t *testing.T) {
	now := time.Now()
	update := UpdatableFields{
		Status:     statusPtr(domain.TicketStatusInProgress),
		AssignedTo: strPtr("Siti"),
		Notes:      strPtr("ordered bearings"),
	}
	once, err := ApplyUpdate(baseTicket(), update, now)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	twice, err := ApplyUpdate(once, update, now)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if twice.Status != once.Status || *twice.AssignedTo != *once.AssignedTo || *twice.Notes != *once.Notes {
		t.Fatal("second application changed field values")
	}
}

func TestApplyUpdateRejectionReasonRequired(t *testing.T) {
	now := time.Now()
	_, err := ApplyUpdate(baseTicket(), UpdatableFields{
		Status:     statusPtr(domain.TicketStatusRejected),
		AssignedTo: strPtr("Siti"),
	}, now)
	if !errors.Is(err, ErrRejectionReasonRequired) {
		t.Fatalf("expected ErrRejectionReasonRequired, got %v", err)
	}

	updated, err := ApplyUpdate(baseTicket(), UpdatableFields{
		Status:          statusPtr(domain.TicketStatusRejected),
		AssignedTo:      strPtr("Siti"),
		RejectionReason: strPtr("duplicate of TPM-20250801-0003"),
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TicketStatusRejected {
		t.Fatalf("status = %s", updated.Status)
	}
}

func TestApplyUpdateCompletedAtStamping(t *testing.T) {
	now := time.Now()
	closed, err := ApplyUpdate(baseTicket(), UpdatableFields{
		Status:     statusPtr(domain.TicketStatusClosed),
		AssignedTo: strPtr("Siti"),
	}, now)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.CompletedAt == nil || !closed.CompletedAt.Equal(now) {
		t.Fatalf("CompletedAt = %v, want %v", closed.CompletedAt, now)
	}

	// No terminal lock: a closed ticket can be reopened, which clears the
	// completion timestamp.
	later := now.Add(time.Hour)
	reopened, err := ApplyUpdate(closed, UpdatableFields{Status: statusPtr(domain.TicketStatusOpen)}, later)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Fatal("CompletedAt not cleared on reopen")
	}
}

func TestApplyUpdatePhotoListMerge(t *testing.T) {
	now := time.Now()
	current := baseTicket()
	current.BeforePhotos = []string{"https://cdn.example.com/a.jpg"}

	// nil leaves the list untouched.
	updated, err := ApplyUpdate(current, UpdatableFields{Notes: strPtr("n")}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.BeforePhotos) != 1 {
		t.Fatalf("before photos changed: %v", updated.BeforePhotos)
	}

	// An explicit empty slice clears it.
	updated, err = ApplyUpdate(current, UpdatableFields{BeforePhotos: []string{}}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.BeforePhotos) != 0 {
		t.Fatalf("before photos not cleared: %v", updated.BeforePhotos)
	}
}

func TestApplyUpdateFailureLeavesNoPartialState(t *testing.T) {
	now := time.Now()
	current := baseTicket()
	_, err := ApplyUpdate(current, UpdatableFields{
		Status: statusPtr(domain.TicketStatusInProgress),
		Notes:  strPtr("should not stick"),
	}, now)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if current.Notes != nil {
		t.Fatal("input ticket mutated")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		status domain.TicketStatus
		want   int
	}{
		{domain.TicketStatusOpen, 10},
		{domain.TicketStatusInProgress, 50},
		{domain.TicketStatusPendingParts, 75},
		{domain.TicketStatusClosed, 100},
		{domain.TicketStatusRejected, 0},
		{domain.TicketStatus("bogus"), 0},
		{domain.TicketStatus(""), 0},
	}
	for _, tc := range tests {
		if got := Progress(tc.status); got != tc.want {
			t.Errorf("Progress(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}
