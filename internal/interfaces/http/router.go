package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-espumas/internal/application/auth"
	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/application/production"
	"github.com/jhoicas/producao-espumas/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ComponentUC *inventory.ComponentUseCase
	StockUC     *inventory.StockUseCase
	BOMUC       *bom.UseCase
	BatchUC     *production.RegisterBatchUseCase
	DashboardUC *report.DashboardUseCase
	PDF         ReportPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/users", authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/users")
	users.Get("/", authHandler.ListUsers)
	users.Patch("/:id/toggle", authHandler.ToggleUser)
	users.Put("/:id/password", authHandler.ChangePassword)

	componentHandler := NewComponentHandler(deps.ComponentUC)
	stockHandler := NewStockHandler(deps.StockUC)
	components := protected.Group("/components")
	components.Get("/", componentHandler.List)
	components.Post("/", componentHandler.Create)
	components.Get("/:id", componentHandler.GetByID)
	components.Patch("/:id/toggle", componentHandler.Toggle)
	components.Post("/:id/adjustments", stockHandler.Adjust)
	components.Get("/:id/movements", stockHandler.Movements)

	stock := protected.Group("/stock")
	stock.Get("/", stockHandler.Balances)
	stock.Post("/recalculate", stockHandler.Recalculate)

	foamHandler := NewFoamTypeHandler(deps.BOMUC)
	foamTypes := protected.Group("/foam-types")
	foamTypes.Get("/", foamHandler.List)
	foamTypes.Post("/", foamHandler.Create)
	foamTypes.Put("/:id", foamHandler.Rename)
	foamTypes.Patch("/:id/toggle", foamHandler.Toggle)
	foamTypes.Get("/:id/components", foamHandler.Components)

	bomHandler := NewBOMHandler(deps.BOMUC)
	boms := protected.Group("/boms")
	boms.Get("/", bomHandler.List)
	boms.Post("/", bomHandler.Create)
	boms.Get("/:id", bomHandler.GetByID)
	boms.Put("/:id", bomHandler.Update)

	batchHandler := NewBatchHandler(deps.BatchUC)
	batches := protected.Group("/batches")
	batches.Get("/", batchHandler.List)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)

	reportHandler := NewReportHandler(deps.DashboardUC, deps.PDF)
	reports := protected.Group("/reports")
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/batches.csv", reportHandler.CSV)
	reports.Get("/batches.xlsx", reportHandler.XLSX)
	reports.Get("/batches.pdf", reportHandler.PDF)
}
