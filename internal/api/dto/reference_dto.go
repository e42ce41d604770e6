package dto

import (
	"time"

	"github.com/prodline/tpm-service/internal/domain"
)

// DepartmentRequest payload for create/update.
type DepartmentRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// DepartmentResponse reference entry.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LineAreaRequest payload for create/update.
type LineAreaRequest struct {
	DepartmentID *string `json:"department_id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

// LineAreaResponse reference entry.
type LineAreaResponse struct {
	ID           string    `json:"id"`
	DepartmentID *string   `json:"department_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TechnicianRequest payload for create/update.
type TechnicianRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// TechnicianResponse reference entry.
type TechnicianResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DepartmentFromDomain maps a domain record.
func DepartmentFromDomain(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		IsActive:  dept.IsActive,
		CreatedAt: dept.CreatedAt,
	}
}

// LineAreaFromDomain maps a domain record.
func LineAreaFromDomain(area *domain.LineArea) LineAreaResponse {
	return LineAreaResponse{
		ID:           area.ID,
		DepartmentID: area.DepartmentID,
		Name:         area.Name,
		Description:  area.Description,
		IsActive:     area.IsActive,
		CreatedAt:    area.CreatedAt,
	}
}

// TechnicianFromDomain maps a domain record.
func TechnicianFromDomain(tech *domain.Technician) TechnicianResponse {
	return TechnicianResponse{
		ID:        tech.ID,
		Name:      tech.Name,
		Phone:     tech.Phone,
		IsActive:  tech.IsActive,
		CreatedAt: tech.CreatedAt,
	}
}
