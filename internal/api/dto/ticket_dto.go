package dto

import (
	"time"

	"github.com/prodline/tpm-service/internal/domain"
)

// SubmitTicketRequest is the public submission payload.
type SubmitTicketRequest struct {
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Category            domain.TicketCategory `json:"category"`
	Priority            domain.TicketPriority `json:"priority"`
	LineAreaID          string                `json:"line_area_id"`
	RequesterName       string                `json:"requester_name"`
	RequesterDepartment string                `json:"requester_department"`
	RequesterContact    *string               `json:"requester_contact"`
	BeforePhotos        []string              `json:"before_photos"`
}

// UpdateTicketRequest is the admin update payload. Every member is optional;
// absent fields leave the stored value untouched.
type UpdateTicketRequest struct {
	Status              *domain.TicketStatus   `json:"status"`
	Priority            *domain.TicketPriority `json:"priority"`
	Category            *domain.TicketCategory `json:"category"`
	AssignedTo          *string                `json:"assigned_to"`
	Notes               *string                `json:"notes"`
	RejectionReason     *string                `json:"rejection_reason"`
	BeforePhotos        []string               `json:"before_photos"`
	AfterPhotos         []string               `json:"after_photos"`
	Title               *string                `json:"title"`
	Description         *string                `json:"description"`
	LineAreaName        *string                `json:"line_area_name"`
	RequesterName       *string                `json:"requester_name"`
	RequesterDepartment *string                `json:"requester_department"`
	RequesterContact    *string                `json:"requester_contact"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Category     domain.TicketCategory `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	AssignedTo   *string               `json:"assigned_to"`
	LineAreaName string                `json:"line_area_name"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID                  string                `json:"id"`
	TicketNumber        string                `json:"ticket_number"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Category            domain.TicketCategory `json:"category"`
	Priority            domain.TicketPriority `json:"priority"`
	Status              domain.TicketStatus   `json:"status"`
	AssignedTo          *string               `json:"assigned_to"`
	Notes               *string               `json:"notes"`
	RejectionReason     *string               `json:"rejection_reason"`
	BeforePhotos        []string              `json:"before_photos"`
	AfterPhotos         []string              `json:"after_photos"`
	RequesterName       string                `json:"requester_name"`
	RequesterDepartment string                `json:"requester_department"`
	RequesterContact    *string               `json:"requester_contact"`
	LineAreaName        string                `json:"line_area_name"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
	CompletedAt         *time.Time            `json:"completed_at"`
	Logs                []TicketLogResponse   `json:"logs,omitempty"`
}

// TicketLogResponse represents one audit entry.
type TicketLogResponse struct {
	ID          string           `json:"id"`
	Action      domain.LogAction `json:"action"`
	Description string           `json:"description"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TrackedTicketResponse decorates a summary with the progress percentage
// shown on the public tracking view.
type TrackedTicketResponse struct {
	TicketSummary
	Progress int `json:"progress"`
}
