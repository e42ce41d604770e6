package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for maintenance tickets.
type TicketStatus string

const (
	TicketStatusOpen         TicketStatus = "open"
	TicketStatusInProgress   TicketStatus = "in_progress"
	TicketStatusPendingParts TicketStatus = "pending_parts"
	TicketStatusClosed       TicketStatus = "closed"
	// TicketStatusRejected keeps the original "ditolak" wire value for
	// compatibility with existing records.
	TicketStatusRejected TicketStatus = "ditolak"
)

// TicketCategory enumerates maintenance request types.
type TicketCategory string

const (
	CategoryCorrectiveAction TicketCategory = "corrective_action"
	CategoryRepair           TicketCategory = "repair"
	CategoryProcurement      TicketCategory = "procurement"
	CategorySupport          TicketCategory = "support"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// MaxPhotosPerList caps each photo list; enforced at the API boundary.
const MaxPhotosPerList = 5

// UnassignedMarker is the legacy sentinel some clients send instead of
// omitting the assignee.
const UnassignedMarker = "unassigned"

// Ticket is the aggregate for maintenance requests.
type Ticket struct {
	ID                  string
	TicketNumber        string
	Title               string
	Description         string
	Category            TicketCategory
	Priority            TicketPriority
	Status              TicketStatus
	AssignedTo          *string
	Notes               *string
	RejectionReason     *string
	BeforePhotos        []string
	AfterPhotos         []string
	RequesterName       string
	RequesterDepartment string
	RequesterContact    *string
	LineAreaName        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
}

// IsAssigned reports whether an assignee value names an actual technician.
// nil, empty, and the legacy "unassigned" sentinel all count as unassigned.
func IsAssigned(assignedTo *string) bool {
	if assignedTo == nil {
		return false
	}
	return *assignedTo != "" && *assignedTo != UnassignedMarker
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusPendingParts, TicketStatusClosed, TicketStatusRejected:
		return true
	default:
		return false
	}
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c TicketCategory) bool {
	switch c {
	case CategoryCorrectiveAction, CategoryRepair, CategoryProcurement, CategorySupport:
		return true
	default:
		return false
	}
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	default:
		return false
	}
}

// FormatTicketNumber renders the human-readable ticket number for the given
// day and per-day sequence, e.g. TPM-20250831-0042. Assigned once at insert
// time and never recomputed.
func FormatTicketNumber(day time.Time, seq int) string {
	return fmt.Sprintf("TPM-%s-%04d", day.Format("20060102"), seq)
}
