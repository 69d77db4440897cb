package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldstack/isp-ops-service/internal/cloudsync"
	"github.com/fieldstack/isp-ops-service/internal/config"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	apperrors "github.com/fieldstack/isp-ops-service/pkg/util"
)

// SystemHandler serves health, diagnostics and sync administration.
type SystemHandler struct {
	cfg    *config.Config
	kv     kvstore.Store
	syncer *cloudsync.Syncer
}

// NewSystemHandler constructs the handler.
func NewSystemHandler(cfg *config.Config, kv kvstore.Store, syncer *cloudsync.Syncer) *SystemHandler {
	return &SystemHandler{cfg: cfg, kv: kv, syncer: syncer}
}

// Live reports process liveness.
func (h *SystemHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

// Ready reports whether the primary store answers.
func (h *SystemHandler) Ready(c *fiber.Ctx) error {
	if err := h.kv.Ping(c.UserContext()); err != nil {
		return apperrors.NewDomainError("NOT_READY", "store unreachable", fiber.StatusServiceUnavailable,
			map[string]any{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// Diagnostics reports which integration credentials are configured. Values
// are never echoed, only presence.
func (h *SystemHandler) Diagnostics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.cfg.Diagnostics()})
}

// TriggerSync pushes every dirty collection to the remote immediately.
func (h *SystemHandler) TriggerSync(c *fiber.Ctx) error {
	if !h.syncer.Enabled() {
		return apperrors.NewConflict("remote sync not configured", nil)
	}
	synced, failed := h.syncer.Flush(c.UserContext())
	if synced == nil {
		synced = []string{}
	}
	if failed == nil {
		failed = []string{}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"synced": synced, "failed": failed}})
}

// TriggerFullSync mirrors every stored collection to the remote.
func (h *SystemHandler) TriggerFullSync(c *fiber.Ctx) error {
	if !h.syncer.Enabled() {
		return apperrors.NewConflict("remote sync not configured", nil)
	}
	if err := h.syncer.SyncAll(c.UserContext()); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "completed"}})
}
