package domain

import "time"

// Technician models a maintenance staff member eligible for ticket
// assignment. Tickets reference technicians by name.
type Technician struct {
	ID        string
	Name      string
	Phone     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
