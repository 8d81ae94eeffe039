package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Items     ItemService
	Movements MovementService
	Shipments ShipmentService
	Reports   ReportService
	Auth      AuthService   // nil deshabilita POST /api/auth/login
	Tokens    TokenVerifier // nil deja las escrituras abiertas (desarrollo local)
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras
// exigen Bearer Token con rol admin o bodeguero cuando hay verificador configurado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	var guard []fiber.Handler
	if deps.Tokens != nil {
		guard = []fiber.Handler{
			AuthMiddleware(deps.Tokens),
			RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero),
		}
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	inventoryHandler := NewInventoryHandler(deps.Items, deps.Movements)
	shipmentHandler := NewShipmentHandler(deps.Shipments)
	reportHandler := NewReportHandler(deps.Reports)

	if deps.Auth != nil {
		api.Post("/auth/login", NewAuthHandler(deps.Auth).Login)
	}

	// Inventory (las rutas estáticas antes que las paramétricas)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/deleted", inventoryHandler.ListDeleted)
	inv.Get("/deleted/export.csv", reportHandler.DeletedInventoryCSV)
	inv.Get("/search", inventoryHandler.Search)
	inv.Get("/export.csv", reportHandler.InventoryCSV)
	inv.Get("/export.xlsx", reportHandler.InventoryXLSX)
	inv.Get("/items/:id", inventoryHandler.GetByID)
	inv.Get("/items/:id/history", inventoryHandler.History)
	inv.Get("/items/:id/deletion", inventoryHandler.DeletionState)
	inv.Post("/items", write(inventoryHandler.Create)...)
	inv.Put("/items/:id", write(inventoryHandler.Update)...)
	inv.Delete("/items/:id", write(inventoryHandler.Delete)...)
	inv.Post("/items/:id/restore", write(inventoryHandler.Restore)...)
	inv.Post("/items/:id/movements", write(inventoryHandler.RegisterMovement)...)

	// Shipments
	shipments := api.Group("/shipments")
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/export.csv", reportHandler.ShipmentsCSV)
	shipments.Get("/export.xml", reportHandler.ShipmentsXML)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Get("/:id/pdf", reportHandler.ShipmentPDF)
	shipments.Post("/", write(shipmentHandler.Create)...)
	shipments.Delete("/:id", write(shipmentHandler.Delete)...)
}
