package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/api/dto"
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// EquipmentHandler serves the CPE inventory endpoints.
type EquipmentHandler struct {
	equipment *service.EquipmentService
	store     *store.Store
}

// NewEquipmentHandler constructs the handler.
func NewEquipmentHandler(equipment *service.EquipmentService, st *store.Store) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment, store: st}
}

// Register adds a unit to inventory.
func (h *EquipmentHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterEquipmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	unit := h.equipment.Register(c.UserContext(), req.ToInput(), actor(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": unit})
}

// List returns inventory matching the query-string search and status filter.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	snap := listView(c, h.store.Equipment.List(),
		func(e domain.Equipment) string { return string(e.Status) },
		func(e domain.Equipment) string { return e.Serial },
		func(e domain.Equipment) string { return e.MAC },
		func(e domain.Equipment) string { return e.Model },
		func(e domain.Equipment) string { return e.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

// Get returns one unit by ID.
func (h *EquipmentHandler) Get(c *fiber.Ctx) error {
	unit, ok := h.store.Equipment.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("equipment", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": unit})
}

// History returns the status-change history, newest first.
func (h *EquipmentHandler) History(c *fiber.Ctx) error {
	unit, ok := h.store.Equipment.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("equipment", map[string]any{"id": c.Params("id")})
	}
	history := unit.History
	if history == nil {
		history = []domain.StatusChange{}
	}
	return c.JSON(fiber.Map{"data": history})
}

// Assign installs an available unit at a client site.
func (h *EquipmentHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignEquipmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	unit, err := h.equipment.Assign(c.UserContext(), c.Params("id"), req.ClientID, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unit})
}

// Release returns an installed unit to inventory. The reason body is
// optional.
func (h *EquipmentHandler) Release(c *fiber.Ctx) error {
	var req dto.EquipmentReasonRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	unit, err := h.equipment.Release(c.UserContext(), c.Params("id"), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unit})
}

// MarkDamaged flags a unit as damaged. The reason body is optional.
func (h *EquipmentHandler) MarkDamaged(c *fiber.Ctx) error {
	var req dto.EquipmentReasonRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	unit, err := h.equipment.MarkDamaged(c.UserContext(), c.Params("id"), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unit})
}

// Delete hard-removes an inventory record.
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if !h.store.Equipment.Delete(c.Params("id")) {
		return apperrors.NewNotFound("equipment", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
