package domain

import "time"

// LineArea represents a physical production line or area, optionally grouped
// under a department.
type LineArea struct {
	ID           string
	DepartmentID *string
	Name         string
	Description  string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
