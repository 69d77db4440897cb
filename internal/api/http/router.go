// Package http wires the fiber application: middlewares, routes and the
// handler dependencies they need.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldstack/isp-ops-service/internal/api/http/handlers"
	"github.com/fieldstack/isp-ops-service/internal/auth"
)

// RouteConfig bundles everything the router needs.
type RouteConfig struct {
	Auth      *auth.Middleware
	AuthH     *handlers.AuthHandler
	Clients   *handlers.ClientHandler
	Tickets   *handlers.TicketHandler
	Equipment *handlers.EquipmentHandler
	Fieldwork *handlers.FieldworkHandler
	System    *handlers.SystemHandler
	Metrics   prometheus.Gatherer
}

// RegisterRoutes declares the full API surface.
func RegisterRoutes(app *fiber.App, rc RouteConfig) {
	app.Get("/health/live", rc.System.Live)
	app.Get("/health/ready", rc.System.Ready)
	if rc.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rc.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")
	api.Post("/auth/login", rc.AuthH.Login)

	protected := api.Group("/", rc.Auth.Handle)

	operators := protected.Group("/operators")
	operators.Get("/", rc.AuthH.ListOperators)
	operators.Post("/", rc.AuthH.AddOperator)
	operators.Delete("/:email", rc.AuthH.RemoveOperator)
	operators.Get("/check", rc.AuthH.CheckAccess)

	clients := protected.Group("/clients")
	clients.Post("/", rc.Clients.Create)
	clients.Get("/", rc.Clients.List)
	clients.Get("/:id", rc.Clients.Get)
	clients.Get("/:id/history", rc.Clients.History)
	clients.Patch("/:id", rc.Clients.Update)
	clients.Put("/:id/status", rc.Clients.ChangeStatus)
	clients.Put("/:id/plan", rc.Clients.ChangePlan)
	clients.Delete("/:id", rc.Clients.Delete)

	tickets := protected.Group("/tickets")
	tickets.Post("/", rc.Tickets.Create)
	tickets.Get("/", rc.Tickets.List)
	tickets.Get("/:id", rc.Tickets.Get)
	tickets.Get("/:id/history", rc.Tickets.History)
	tickets.Put("/:id/assign", rc.Tickets.Assign)
	tickets.Put("/:id/status", rc.Tickets.ChangeStatus)
	tickets.Post("/:id/escalate", rc.Tickets.Escalate)
	tickets.Delete("/:id", rc.Tickets.Delete)

	equipment := protected.Group("/equipment")
	equipment.Post("/", rc.Equipment.Register)
	equipment.Get("/", rc.Equipment.List)
	equipment.Get("/:id", rc.Equipment.Get)
	equipment.Get("/:id/history", rc.Equipment.History)
	equipment.Put("/:id/assign", rc.Equipment.Assign)
	equipment.Put("/:id/release", rc.Equipment.Release)
	equipment.Put("/:id/damage", rc.Equipment.MarkDamaged)
	equipment.Delete("/:id", rc.Equipment.Delete)

	installations := protected.Group("/installations")
	installations.Post("/", rc.Fieldwork.CreateInstallation)
	installations.Get("/", rc.Fieldwork.ListInstallations)
	installations.Put("/:id/status", rc.Fieldwork.ChangeInstallationStatus)
	installations.Delete("/:id", rc.Fieldwork.DeleteInstallation)

	derivations := protected.Group("/derivations")
	derivations.Post("/", rc.Fieldwork.CreateDerivation)
	derivations.Get("/", rc.Fieldwork.ListDerivations)
	derivations.Put("/:id/status", rc.Fieldwork.ChangeDerivationStatus)
	derivations.Delete("/:id", rc.Fieldwork.DeleteDerivation)

	postsale := protected.Group("/postsale")
	postsale.Post("/", rc.Fieldwork.CreatePostSale)
	postsale.Get("/", rc.Fieldwork.ListPostSale)
	postsale.Put("/:id/status", rc.Fieldwork.ChangePostSaleStatus)
	postsale.Delete("/:id", rc.Fieldwork.DeletePostSale)

	requests := protected.Group("/requests")
	requests.Post("/", rc.Fieldwork.CreateAdminRequest)
	requests.Get("/", rc.Fieldwork.ListAdminRequests)
	requests.Put("/:id/status", rc.Fieldwork.ChangeAdminRequestStatus)
	requests.Delete("/:id", rc.Fieldwork.DeleteAdminRequest)

	system := protected.Group("/system")
	system.Get("/diagnostics", rc.System.Diagnostics)
	system.Post("/sync", rc.System.TriggerSync)
	system.Post("/sync/full", rc.System.TriggerFullSync)
}
