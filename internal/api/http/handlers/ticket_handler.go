package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/api/dto"
	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/store"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// TicketHandler serves the trouble-ticket endpoints.
type TicketHandler struct {
	tickets *service.TicketService
	store   *store.Store
}

// NewTicketHandler constructs the handler.
func NewTicketHandler(tickets *service.TicketService, st *store.Store) *TicketHandler {
	return &TicketHandler{tickets: tickets, store: st}
}

// Create opens a ticket.
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	ticket, err := h.tickets.Open(c.UserContext(), req.ToInput(), actor(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// List returns tickets matching the query-string search and filters. Besides
// the shared status filter, `client_id` and `priority` narrow the result.
func (h *TicketHandler) List(c *fiber.Ctx) error {
	snap := listView(c, h.filteredTickets(c),
		func(t domain.Ticket) string { return string(t.Status) },
		func(t domain.Ticket) string { return t.Description },
		func(t domain.Ticket) string { return t.Category },
		func(t domain.Ticket) string { return t.ClientID },
		func(t domain.Ticket) string { return t.ID },
	)
	return c.JSON(dto.NewListResponse(snap))
}

func (h *TicketHandler) filteredTickets(c *fiber.Ctx) []domain.Ticket {
	rows := h.store.Tickets.List()
	clientID := c.Query("client_id")
	priority := c.Query("priority")
	if clientID == "" && priority == "" {
		return rows
	}
	out := rows[:0:0]
	for _, t := range rows {
		if clientID != "" && t.ClientID != clientID {
			continue
		}
		if priority != "" && string(t.Priority) != priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Get returns one ticket by ID.
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	ticket, ok := h.store.Tickets.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// History returns the status-change history, newest first.
func (h *TicketHandler) History(c *fiber.Ctx) error {
	ticket, ok := h.store.Tickets.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": c.Params("id")})
	}
	history := ticket.History
	if history == nil {
		history = []domain.StatusChange{}
	}
	return c.JSON(fiber.Map{"data": history})
}

// Assign sets the responsible technician.
func (h *TicketHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	ticket, err := h.tickets.Assign(c.UserContext(), c.Params("id"), req.Technician, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// ChangeStatus transitions a ticket through its lifecycle.
func (h *TicketHandler) ChangeStatus(c *fiber.Ctx) error {
	var req dto.ChangeTicketStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), c.Params("id"), domain.TicketStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Escalate derives a ticket to the external-plant crew.
func (h *TicketHandler) Escalate(c *fiber.Ctx) error {
	var req dto.EscalateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if msgs := req.Validate(); !msgs.OK() {
		return validationError(msgs)
	}

	derivation, err := h.tickets.Escalate(c.UserContext(), c.Params("id"), req.Zone, req.Detail, actor(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": derivation})
}

// Delete hard-removes a ticket record.
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if !h.store.Tickets.Delete(c.Params("id")) {
		return apperrors.NewNotFound("ticket", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
