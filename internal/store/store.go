package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/domain"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
)

// Fixed storage keys, one per business collection. These match the key space
// the operations frontends already persist under, so existing data loads
// unchanged.
const (
	KeyClients       = "clientes"
	KeyTickets       = "tickets"
	KeyEquipment     = "equipos"
	KeyInstallations = "instalaciones"
	KeyDerivations   = "derivaciones"
	KeyPostSale      = "postventa"
	KeyAdminRequests = "requerimientos"
)

// Store aggregates every entity slice. Each slice exclusively owns its
// collection; cross-references between collections are by ID only.
type Store struct {
	Clients       *Slice[domain.Client]
	Tickets       *Slice[domain.Ticket]
	Equipment     *Slice[domain.Equipment]
	Installations *Slice[domain.Installation]
	Derivations   *Slice[domain.PlantDerivation]
	PostSale      *Slice[domain.PostSaleCase]
	AdminRequests *Slice[domain.AdminRequest]

	kv kvstore.Store
}

// New wires all slices over the given KV adapter.
func New(kv kvstore.Store, logger *zap.Logger, opts Options) *Store {
	return &Store{
		kv:            kv,
		Clients:       NewSlice(clientDesc(), kv, logger, opts),
		Tickets:       NewSlice(ticketDesc(), kv, logger, opts),
		Equipment:     NewSlice(equipmentDesc(), kv, logger, opts),
		Installations: NewSlice(installationDesc(), kv, logger, opts),
		Derivations:   NewSlice(derivationDesc(), kv, logger, opts),
		PostSale:      NewSlice(postSaleDesc(), kv, logger, opts),
		AdminRequests: NewSlice(adminRequestDesc(), kv, logger, opts),
	}
}

// Load hydrates every slice from persistence. Missing collections start empty.
func (s *Store) Load(ctx context.Context) error {
	if err := s.Clients.Load(ctx, s.kv); err != nil {
		return err
	}
	if err := s.Tickets.Load(ctx, s.kv); err != nil {
		return err
	}
	if err := s.Equipment.Load(ctx, s.kv); err != nil {
		return err
	}
	if err := s.Installations.Load(ctx, s.kv); err != nil {
		return err
	}
	if err := s.Derivations.Load(ctx, s.kv); err != nil {
		return err
	}
	if err := s.PostSale.Load(ctx, s.kv); err != nil {
		return err
	}
	return s.AdminRequests.Load(ctx, s.kv)
}

// Flush blocks until every scheduled write has completed. Called on shutdown
// and by the CLI before exiting.
func (s *Store) Flush() {
	s.Clients.Flush()
	s.Tickets.Flush()
	s.Equipment.Flush()
	s.Installations.Flush()
	s.Derivations.Flush()
	s.PostSale.Flush()
	s.AdminRequests.Flush()
}

func clientDesc() Desc[domain.Client] {
	return Desc[domain.Client]{
		Key:    KeyClients,
		Prefix: "CLI",
		ID:     func(c *domain.Client) string { return c.ID },
		SetID:  func(c *domain.Client, id string) { c.ID = id },
		Status: func(c *domain.Client) string { return string(c.Status) },
		History: func(c *domain.Client) []domain.StatusChange { return c.History },
		SetHistory: func(c *domain.Client, h []domain.StatusChange) { c.History = h },
		RegisteredAt: func(c *domain.Client) time.Time { return c.RegisteredAt },
		SetRegisteredAt: func(c *domain.Client, t time.Time) { c.RegisteredAt = t },
		Touch: func(c *domain.Client, t time.Time) { c.UpdatedAt = &t },
	}
}

func ticketDesc() Desc[domain.Ticket] {
	return Desc[domain.Ticket]{
		Key:    KeyTickets,
		Prefix: "TKT",
		ID:     func(t *domain.Ticket) string { return t.ID },
		SetID:  func(t *domain.Ticket, id string) { t.ID = id },
		Status: func(t *domain.Ticket) string { return string(t.Status) },
		History: func(t *domain.Ticket) []domain.StatusChange { return t.History },
		SetHistory: func(t *domain.Ticket, h []domain.StatusChange) { t.History = h },
		RegisteredAt: func(t *domain.Ticket) time.Time { return t.ReportedAt },
		SetRegisteredAt: func(t *domain.Ticket, at time.Time) { t.ReportedAt = at },
	}
}

func equipmentDesc() Desc[domain.Equipment] {
	return Desc[domain.Equipment]{
		Key:    KeyEquipment,
		Prefix: "EQP",
		ID:     func(e *domain.Equipment) string { return e.ID },
		SetID:  func(e *domain.Equipment, id string) { e.ID = id },
		Status: func(e *domain.Equipment) string { return string(e.Status) },
		History: func(e *domain.Equipment) []domain.StatusChange { return e.History },
		SetHistory: func(e *domain.Equipment, h []domain.StatusChange) { e.History = h },
		RegisteredAt: func(e *domain.Equipment) time.Time { return e.RegisteredAt },
		SetRegisteredAt: func(e *domain.Equipment, t time.Time) { e.RegisteredAt = t },
	}
}

func installationDesc() Desc[domain.Installation] {
	return Desc[domain.Installation]{
		Key:    KeyInstallations,
		Prefix: "INS",
		ID:     func(i *domain.Installation) string { return i.ID },
		SetID:  func(i *domain.Installation, id string) { i.ID = id },
		Status: func(i *domain.Installation) string { return string(i.Status) },
		History: func(i *domain.Installation) []domain.StatusChange { return i.History },
		SetHistory: func(i *domain.Installation, h []domain.StatusChange) { i.History = h },
		RegisteredAt: func(i *domain.Installation) time.Time { return i.RegisteredAt },
		SetRegisteredAt: func(i *domain.Installation, t time.Time) { i.RegisteredAt = t },
	}
}

func derivationDesc() Desc[domain.PlantDerivation] {
	return Desc[domain.PlantDerivation]{
		Key:    KeyDerivations,
		Prefix: "DRV",
		ID:     func(d *domain.PlantDerivation) string { return d.ID },
		SetID:  func(d *domain.PlantDerivation, id string) { d.ID = id },
		Status: func(d *domain.PlantDerivation) string { return string(d.Status) },
		History: func(d *domain.PlantDerivation) []domain.StatusChange { return d.History },
		SetHistory: func(d *domain.PlantDerivation, h []domain.StatusChange) { d.History = h },
		RegisteredAt: func(d *domain.PlantDerivation) time.Time { return d.RegisteredAt },
		SetRegisteredAt: func(d *domain.PlantDerivation, t time.Time) { d.RegisteredAt = t },
	}
}

func postSaleDesc() Desc[domain.PostSaleCase] {
	return Desc[domain.PostSaleCase]{
		Key:    KeyPostSale,
		Prefix: "PSV",
		ID:     func(p *domain.PostSaleCase) string { return p.ID },
		SetID:  func(p *domain.PostSaleCase, id string) { p.ID = id },
		Status: func(p *domain.PostSaleCase) string { return string(p.Status) },
		History: func(p *domain.PostSaleCase) []domain.StatusChange { return p.History },
		SetHistory: func(p *domain.PostSaleCase, h []domain.StatusChange) { p.History = h },
		RegisteredAt: func(p *domain.PostSaleCase) time.Time { return p.RegisteredAt },
		SetRegisteredAt: func(p *domain.PostSaleCase, t time.Time) { p.RegisteredAt = t },
	}
}

func adminRequestDesc() Desc[domain.AdminRequest] {
	return Desc[domain.AdminRequest]{
		Key:    KeyAdminRequests,
		Prefix: "REQ",
		ID:     func(r *domain.AdminRequest) string { return r.ID },
		SetID:  func(r *domain.AdminRequest, id string) { r.ID = id },
		Status: func(r *domain.AdminRequest) string { return string(r.Status) },
		History: func(r *domain.AdminRequest) []domain.StatusChange { return r.History },
		SetHistory: func(r *domain.AdminRequest, h []domain.StatusChange) { r.History = h },
		RegisteredAt: func(r *domain.AdminRequest) time.Time { return r.RegisteredAt },
		SetRegisteredAt: func(r *domain.AdminRequest, t time.Time) { r.RegisteredAt = t },
	}
}
