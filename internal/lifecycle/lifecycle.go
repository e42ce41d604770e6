// Package lifecycle holds the pure update rules for maintenance tickets:
// which fields an update may touch, when an update is admissible, and the
// progress percentage derived from a status. It performs no I/O; callers
// persist the returned record and append the matching audit entry.
package lifecycle

import (
	"errors"
	"time"

	"github.com/prodline/tpm-service/internal/domain"
)

var (
	// ErrRequiresAssignment is returned when an update would leave a
	// non-open ticket without an assignee.
	ErrRequiresAssignment = errors.New("ticket must be assigned before leaving open status")

	// ErrRejectionReasonRequired is returned when an update would reject a
	// ticket without giving a reason.
	ErrRejectionReasonRequired = errors.New("rejection reason required when rejecting a ticket")
)

// UpdatableFields is the full allow-list of fields an update may change.
// A nil member leaves the current value untouched: ApplyUpdate merges, it
// never replaces wholesale. Photo lists follow the same rule, nil means
// untouched while an empty non-nil slice clears the list.
type UpdatableFields struct {
	Status              *domain.TicketStatus
	Priority            *domain.TicketPriority
	Category            *domain.TicketCategory
	AssignedTo          *string
	Notes               *string
	RejectionReason     *string
	BeforePhotos        []string
	AfterPhotos         []string
	Title               *string
	Description         *string
	LineAreaName        *string
	RequesterName       *string
	RequesterDepartment *string
	RequesterContact    *string
}

// ApplyUpdate merges the present fields of update into current and validates
// the result. On success it returns the normalized ticket to persist, with
// UpdatedAt refreshed to now and CompletedAt stamped or cleared according to
// the resulting status. On failure the update is dropped entirely; no
// partial application occurs.
//
// Any status may follow any status: closed and rejected tickets are not
// locked and may be transitioned again through this same path.
func ApplyUpdate(current domain.Ticket, update UpdatableFields, now time.Time) (domain.Ticket, error) {
	next := current

	if update.Status != nil {
		next.Status = *update.Status
	}
	if update.Priority != nil {
		next.Priority = *update.Priority
	}
	if update.Category != nil {
		next.Category = *update.Category
	}
	if update.AssignedTo != nil {
		next.AssignedTo = update.AssignedTo
	}
	if update.Notes != nil {
		next.Notes = update.Notes
	}
	if update.RejectionReason != nil {
		next.RejectionReason = update.RejectionReason
	}
	if update.BeforePhotos != nil {
		next.BeforePhotos = update.BeforePhotos
	}
	if update.AfterPhotos != nil {
		next.AfterPhotos = update.AfterPhotos
	}
	if update.Title != nil {
		next.Title = *update.Title
	}
	if update.Description != nil {
		next.Description = *update.Description
	}
	if update.LineAreaName != nil {
		next.LineAreaName = *update.LineAreaName
	}
	if update.RequesterName != nil {
		next.RequesterName = *update.RequesterName
	}
	if update.RequesterDepartment != nil {
		next.RequesterDepartment = *update.RequesterDepartment
	}
	if update.RequesterContact != nil {
		next.RequesterContact = update.RequesterContact
	}

	if next.Status != domain.TicketStatusOpen && !domain.IsAssigned(next.AssignedTo) {
		return domain.Ticket{}, ErrRequiresAssignment
	}
	if next.Status == domain.TicketStatusRejected {
		if next.RejectionReason == nil || *next.RejectionReason == "" {
			return domain.Ticket{}, ErrRejectionReasonRequired
		}
	}

	if next.Status == domain.TicketStatusClosed {
		if next.CompletedAt == nil {
			completed := now
			next.CompletedAt = &completed
		}
	} else if next.CompletedAt != nil {
		next.CompletedAt = nil
	}

	next.UpdatedAt = now
	return next, nil
}

// Progress maps a status to the completion percentage shown on tracking
// views. Unrecognized statuses map to 0.
func Progress(status domain.TicketStatus) int {
	switch status {
	case domain.TicketStatusOpen:
		return 10
	case domain.TicketStatusInProgress:
		return 50
	case domain.TicketStatusPendingParts:
		return 75
	case domain.TicketStatusClosed:
		return 100
	default:
		return 0
	}
}
