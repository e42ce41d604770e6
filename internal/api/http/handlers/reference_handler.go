package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodline/tpm-service/internal/api/dto"
	"github.com/prodline/tpm-service/internal/service"
	apperrors "github.com/prodline/tpm-service/pkg/util/errorutil"
)

// ReferenceHandler serves master data: departments, line/areas, technicians.
type ReferenceHandler struct {
	service *service.ReferenceService
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: referenceService}
}

// ListDepartments GET /reference/departments.
func (h *ReferenceHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.service.ListDepartments(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		items = append(items, dto.DepartmentFromDomain(&depts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListLineAreas GET /reference/line-areas.
func (h *ReferenceHandler) ListLineAreas(c *fiber.Ctx) error {
	areas, err := h.service.ListLineAreas(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.LineAreaResponse, 0, len(areas))
	for i := range areas {
		items = append(items, dto.LineAreaFromDomain(&areas[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTechnicians GET /reference/technicians.
func (h *ReferenceHandler) ListTechnicians(c *fiber.Ctx) error {
	techs, err := h.service.ListTechnicians(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TechnicianResponse, 0, len(techs))
	for i := range techs {
		items = append(items, dto.TechnicianFromDomain(&techs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateDepartment POST /admin/departments.
func (h *ReferenceHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, err := h.service.CreateDepartment(c.Context(), stringOrEmpty(req.Name), boolOrDefault(req.IsActive, true))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.DepartmentFromDomain(dept)})
}

// UpdateDepartment PATCH /admin/departments/:id.
func (h *ReferenceHandler) UpdateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, err := h.service.UpdateDepartment(c.Context(), c.Params("id"), req.Name, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DepartmentFromDomain(dept)})
}

// CreateLineArea POST /admin/line-areas.
func (h *ReferenceHandler) CreateLineArea(c *fiber.Ctx) error {
	var req dto.LineAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.CreateLineArea(c.Context(), req.DepartmentID,
		stringOrEmpty(req.Name), stringOrEmpty(req.Description), boolOrDefault(req.IsActive, true))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.LineAreaFromDomain(area)})
}

// UpdateLineArea PATCH /admin/line-areas/:id.
func (h *ReferenceHandler) UpdateLineArea(c *fiber.Ctx) error {
	var req dto.LineAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.UpdateLineArea(c.Context(), c.Params("id"), req.Name, req.Description, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LineAreaFromDomain(area)})
}

// CreateTechnician POST /admin/technicians.
func (h *ReferenceHandler) CreateTechnician(c *fiber.Ctx) error {
	var req dto.TechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tech, err := h.service.CreateTechnician(c.Context(), stringOrEmpty(req.Name), req.Phone, boolOrDefault(req.IsActive, true))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.TechnicianFromDomain(tech)})
}

// UpdateTechnician PATCH /admin/technicians/:id.
func (h *ReferenceHandler) UpdateTechnician(c *fiber.Ctx) error {
	var req dto.TechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tech, err := h.service.UpdateTechnician(c.Context(), c.Params("id"), req.Name, req.Phone, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TechnicianFromDomain(tech)})
}

func stringOrEmpty(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

func boolOrDefault(val *bool, def bool) bool {
	if val == nil {
		return def
	}
	return *val
}
