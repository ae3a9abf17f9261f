package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	ZoneUC      *hierarchy.ZoneUseCase
	RackUC      *hierarchy.RackUseCase
	ShelfUC     *hierarchy.ShelfUseCase
	MoveShelfUC *hierarchy.MoveShelfUseCase
	MoveRackUC  *hierarchy.MoveRackUseCase
	PutAwayUC   *stock.PutAwayUseCase
	StockQuery  *usecase.StockQueryUseCase
	LogUC       *usecase.LogUseCase
	Resolver    *auth.Resolver
	JWTSecret   string
}

// Router registra las rutas de la API. Todas las rutas requieren Bearer Token;
// las mutaciones de jerarquía exigen además rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), ResolveAccess(deps.Resolver))
	write := RequireHierarchyWrite()

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", write, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", write, warehouseHandler.Update)
	warehouses.Delete("/:id", write, warehouseHandler.Delete)

	// Zones
	zones := api.Group("/zones")
	zoneHandler := NewZoneHandler(deps.ZoneUC)
	zones.Post("/", write, zoneHandler.Create)
	zones.Get("/", zoneHandler.List)
	zones.Delete("/:code", write, zoneHandler.Delete)

	// Racks
	racks := api.Group("/racks")
	rackHandler := NewRackHandler(deps.RackUC, deps.MoveRackUC)
	racks.Post("/", write, rackHandler.Create)
	racks.Get("/", rackHandler.List)
	racks.Post("/:code/move", write, rackHandler.Move)
	racks.Delete("/:code", write, rackHandler.Delete)

	// Shelves
	shelves := api.Group("/shelves")
	shelfHandler := NewShelfHandler(deps.ShelfUC, deps.MoveShelfUC)
	shelves.Post("/", write, shelfHandler.Create)
	shelves.Get("/", shelfHandler.List)
	shelves.Put("/:id", write, shelfHandler.Update)
	shelves.Post("/:id/move", write, shelfHandler.Move)
	shelves.Delete("/:id", write, shelfHandler.Delete)

	// Stock: put-away, pick y listados
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.PutAwayUC, deps.StockQuery)
	stockGroup.Post("/putaway", write, stockHandler.PutAway)
	stockGroup.Post("/pick", RequireStockWrite(), stockHandler.Pick)
	stockGroup.Get("/placements", stockHandler.ListPlacements)
	stockGroup.Get("/upcs", stockHandler.ListUPCs)
	stockGroup.Get("/movements", stockHandler.ListMovements)

	// Bitácora estructural (solo lectura)
	logs := api.Group("/logs")
	logHandler := NewLogHandler(deps.LogUC)
	logs.Get("/", logHandler.List)
}
