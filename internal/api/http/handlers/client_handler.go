package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/api/dto"
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// ClientHandler serves the subscriber endpoints.
type ClientHandler struct {
	clients *service.ClientService
	store   *store.Store
}

// NewClientHandler constructs the handler.
func NewClientHandler(clients *service.ClientService, st *store.Store) *ClientHandler {
	return &ClientHandler{clients: clients, store: st}
}

// Create registers a subscriber.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	client := h.clients.Create(c.UserContext(), req.ToInput(), actor(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": client})
}

// List returns clients matching the query-string search and status filter.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	snap := listView(c, h.store.Clients.List(),
		func(cl domain.Client) string { return string(cl.Status) },
		func(cl domain.Client) string { return cl.Name },
		func(cl domain.Client) string { return cl.Document },
		func(cl domain.Client) string { return cl.Address },
		func(cl domain.Client) string { return cl.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

// Get returns one client by ID.
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, ok := h.store.Clients.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("client", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": client})
}

// History returns the status-change history, newest first.
func (h *ClientHandler) History(c *fiber.Ctx) error {
	client, ok := h.store.Clients.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("client", map[string]any{"id": c.Params("id")})
	}
	history := client.History
	if history == nil {
		history = []domain.StatusChange{}
	}
	return c.JSON(fiber.Map{"data": history})
}

// Update merges contact fields.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Update(c.UserContext(), c.Params("id"), req.ToInput(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": client})
}

// ChangeStatus transitions the client lifecycle.
func (h *ClientHandler) ChangeStatus(c *fiber.Ctx) error {
	var req dto.ChangeClientStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	client, err := h.clients.ChangeStatus(c.UserContext(), c.Params("id"), domain.ClientStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": client})
}

// ChangePlan assigns a different plan.
func (h *ClientHandler) ChangePlan(c *fiber.Ctx) error {
	var req dto.ChangePlanRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	client, err := h.clients.ChangePlan(c.UserContext(), c.Params("id"), req.PlanID, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": client})
}

// Delete hard-removes a client record. Lifecycle retirement is the normal
// path; deletion exists for operator mistakes.
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if !h.store.Clients.Delete(c.Params("id")) {
		return apperrors.NewNotFound("client", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
