package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/prodline/tpm-service/internal/domain"
	"github.com/prodline/tpm-service/internal/repository"
	apperrors "github.com/prodline/tpm-service/pkg/util/errorutil"
)

// ReferenceService manages the flat master data backing selection lists:
// departments, line/areas, and technicians.
type ReferenceService struct {
	departments repository.DepartmentRepository
	lineAreas   repository.LineAreaRepository
	technicians repository.TechnicianRepository
}

// ReferenceDependencies bundles repositories.
type ReferenceDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	LineAreaRepo   repository.LineAreaRepository
	TechnicianRepo repository.TechnicianRepository
}

// NewReferenceService constructs the service.
func NewReferenceService(deps ReferenceDependencies) *ReferenceService {
	return &ReferenceService{
		departments: deps.DepartmentRepo,
		lineAreas:   deps.LineAreaRepo,
		technicians: deps.TechnicianRepo,
	}
}

// ListDepartments returns active departments for selection lists.
func (s *ReferenceService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// ListLineAreas returns active line/areas for the submission form.
func (s *ReferenceService) ListLineAreas(ctx context.Context) ([]domain.LineArea, error) {
	areas, err := s.lineAreas.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return areas, nil
}

// ListTechnicians returns active technicians for assignment.
func (s *ReferenceService) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	techs, err := s.technicians.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return techs, nil
}

// CreateDepartment adds a department.
func (s *ReferenceService) CreateDepartment(ctx context.Context, name string, active bool) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	dept := &domain.Department{Name: name, IsActive: active}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// UpdateDepartment renames or toggles a department.
func (s *ReferenceService) UpdateDepartment(ctx context.Context, id string, name *string, active *bool) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", map[string]any{"department_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		dept.Name = strings.TrimSpace(*name)
	}
	if active != nil {
		dept.IsActive = *active
	}
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// CreateLineArea adds a line/area, optionally under a department.
func (s *ReferenceService) CreateLineArea(ctx context.Context, departmentID *string, name, description string, active bool) (*domain.LineArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if departmentID != nil {
		if _, err := s.departments.GetByID(ctx, *departmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("department", map[string]any{"department_id": *departmentID})
			}
			return nil, apperrors.MapError(err)
		}
	}
	area := &domain.LineArea{
		DepartmentID: departmentID,
		Name:         name,
		Description:  strings.TrimSpace(description),
		IsActive:     active,
	}
	if err := s.lineAreas.Create(ctx, area); err != nil {
		return nil, apperrors.MapError(err)
	}
	return area, nil
}

// UpdateLineArea modifies a line/area.
func (s *ReferenceService) UpdateLineArea(ctx context.Context, id string, name, description *string, active *bool) (*domain.LineArea, error) {
	area, err := s.lineAreas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("line area", map[string]any{"line_area_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		area.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		area.Description = strings.TrimSpace(*description)
	}
	if active != nil {
		area.IsActive = *active
	}
	if err := s.lineAreas.Update(ctx, area); err != nil {
		return nil, apperrors.MapError(err)
	}
	return area, nil
}

// CreateTechnician adds a technician.
func (s *ReferenceService) CreateTechnician(ctx context.Context, name string, phone *string, active bool) (*domain.Technician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	tech := &domain.Technician{Name: name, Phone: phone, IsActive: active}
	if err := s.technicians.Create(ctx, tech); err != nil {
		return nil, apperrors.MapError(err)
	}
	return tech, nil
}

// UpdateTechnician modifies a technician.
func (s *ReferenceService) UpdateTechnician(ctx context.Context, id string, name, phone *string, active *bool) (*domain.Technician, error) {
	tech, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		tech.Name = strings.TrimSpace(*name)
	}
	if phone != nil {
		tech.Phone = phone
	}
	if active != nil {
		tech.IsActive = *active
	}
	if err := s.technicians.Update(ctx, tech); err != nil {
		return nil, apperrors.MapError(err)
	}
	return tech, nil
}
