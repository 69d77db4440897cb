package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/api/dto"
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/store"
	"github.com/fieldstack/isp-ops-service/internal/validate"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// FieldworkHandler serves installations, external-plant derivations,
// post-sale cases and administrative requests. The four share the same
// lifecycle so the endpoints mirror each other.
type FieldworkHandler struct {
	fieldops *service.FieldOpsService
	store    *store.Store
}

// NewFieldworkHandler constructs the handler.
func NewFieldworkHandler(fieldops *service.FieldOpsService, st *store.Store) *FieldworkHandler {
	return &FieldworkHandler{fieldops: fieldops, store: st}
}

// CreateInstallation schedules an installation.
func (h *FieldworkHandler) CreateInstallation(c *fiber.Ctx) error {
	var req dto.CreateInstallationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	record, err := h.fieldops.CreateInstallation(c.UserContext(), req.ClientID,
		validate.Sanitize(req.Technician), validate.Sanitize(req.Notes))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// ListInstallations returns installations matching search and status filter.
func (h *FieldworkHandler) ListInstallations(c *fiber.Ctx) error {
	snap := listView(c, h.store.Installations.List(),
		func(i domain.Installation) string { return string(i.Status) },
		func(i domain.Installation) string { return i.ClientID },
		func(i domain.Installation) string { return i.Technician },
		func(i domain.Installation) string { return i.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

// ChangeInstallationStatus transitions an installation.
func (h *FieldworkHandler) ChangeInstallationStatus(c *fiber.Ctx) error {
	req, err := parseWorkStatus(c)
	if err != nil {
		return err
	}
	record, err := h.fieldops.UpdateInstallationStatus(c.UserContext(), c.Params("id"),
		domain.WorkStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// DeleteInstallation hard-removes an installation record.
func (h *FieldworkHandler) DeleteInstallation(c *fiber.Ctx) error {
	if !h.store.Installations.Delete(c.Params("id")) {
		return apperrors.NewNotFound("installation", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateDerivation opens an external-plant derivation directly.
func (h *FieldworkHandler) CreateDerivation(c *fiber.Ctx) error {
	var req dto.CreateDerivationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	record, err := h.fieldops.CreateDerivation(c.UserContext(), req.ClientID,
		validate.Sanitize(req.Zone), validate.Sanitize(req.Detail))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// ListDerivations returns derivations matching search and status filter.
func (h *FieldworkHandler) ListDerivations(c *fiber.Ctx) error {
	snap := listView(c, h.store.Derivations.List(),
		func(d domain.PlantDerivation) string { return string(d.Status) },
		func(d domain.PlantDerivation) string { return d.ClientID },
		func(d domain.PlantDerivation) string { return d.Zone },
		func(d domain.PlantDerivation) string { return d.TicketID },
		func(d domain.PlantDerivation) string { return d.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

// ChangeDerivationStatus transitions a derivation.
func (h *FieldworkHandler) ChangeDerivationStatus(c *fiber.Ctx) error {
	req, err := parseWorkStatus(c)
	if err != nil {
		return err
	}
	record, err := h.fieldops.UpdateDerivationStatus(c.UserContext(), c.Params("id"),
		domain.WorkStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// DeleteDerivation hard-removes a derivation record.
func (h *FieldworkHandler) DeleteDerivation(c *fiber.Ctx) error {
	if !h.store.Derivations.Delete(c.Params("id")) {
		return apperrors.NewNotFound("derivation", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePostSale opens a post-sale follow-up case.
func (h *FieldworkHandler) CreatePostSale(c *fiber.Ctx) error {
	var req dto.CreatePostSaleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	record, err := h.fieldops.CreatePostSaleCase(c.UserContext(), req.ClientID,
		validate.Sanitize(req.Reason), validate.Sanitize(req.Detail))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// ListPostSale returns post-sale cases matching search and status filter.
func (h *FieldworkHandler) ListPostSale(c *fiber.Ctx) error {
	snap := listView(c, h.store.PostSale.List(),
		func(p domain.PostSaleCase) string { return string(p.Status) },
		func(p domain.PostSaleCase) string { return p.ClientID },
		func(p domain.PostSaleCase) string { return p.Reason },
		func(p domain.PostSaleCase) string { return p.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

// ChangePostSaleStatus transitions a post-sale case.
func (h *FieldworkHandler) ChangePostSaleStatus(c *fiber.Ctx) error {
	req, err := parseWorkStatus(c)
	if err != nil {
		return err
	}
	record, err := h.fieldops.UpdatePostSaleStatus(c.UserContext(), c.Params("id"),
		domain.WorkStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// DeletePostSale hard-removes a post-sale record.
func (h *FieldworkHandler) DeletePostSale(c *fiber.Ctx) error {
	if !h.store.PostSale.Delete(c.Params("id")) {
		return apperrors.NewNotFound("post-sale case", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateAdminRequest opens an administrative requirement.
func (h *FieldworkHandler) CreateAdminRequest(c *fiber.Ctx) error {
	var req dto.CreateAdminRequestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	record, err := h.fieldops.CreateAdminRequest(c.UserContext(), req.ClientID,
		validate.Sanitize(req.Kind), validate.Sanitize(req.Detail))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// ListAdminRequests returns admin requests matching search and status filter.
func (h *FieldworkHandler) ListAdminRequests(c *fiber.Ctx) error {
	snap := listView(c, h.store.AdminRequests.List(),
		func(r domain.AdminRequest) string { return string(r.Status) },
		func(r domain.AdminRequest) string { return r.ClientID },
		func(r domain.AdminRequest) string { return r.Kind },
		func(r domain.AdminRequest) string { return r.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

// ChangeAdminRequestStatus transitions an administrative requirement.
func (h *FieldworkHandler) ChangeAdminRequestStatus(c *fiber.Ctx) error {
	req, err := parseWorkStatus(c)
	if err != nil {
		return err
	}
	record, err := h.fieldops.UpdateAdminRequestStatus(c.UserContext(), c.Params("id"),
		domain.WorkStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// DeleteAdminRequest hard-removes an admin request record.
func (h *FieldworkHandler) DeleteAdminRequest(c *fiber.Ctx) error {
	if !h.store.AdminRequests.Delete(c.Params("id")) {
		return apperrors.NewNotFound("admin request", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseWorkStatus(c *fiber.Ctx) (*dto.ChangeWorkStatusRequest, error) {
	var req dto.ChangeWorkStatusRequest
	if err := parseBody(c, &req); err != nil {
		return nil, err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return nil, validationError(msgs)
	}
	return &req, nil
}
