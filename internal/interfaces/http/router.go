package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hemocentro-api/internal/application/analytics"
	"github.com/jhoicas/hemocentro-api/internal/application/auth"
	"github.com/jhoicas/hemocentro-api/internal/application/donor"
	"github.com/jhoicas/hemocentro-api/internal/application/request"
	"github.com/jhoicas/hemocentro-api/internal/application/stock"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *stock.LedgerUseCase
	WorkflowUC  *request.WorkflowUseCase
	DonorUC     *donor.DonorUseCase
	AuthUC      *auth.AuthUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportGen   ReportGenerator
	AppName     string
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Stock (lectura para autenticados; altas, movimientos y reporte solo admin)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.ReportGen, deps.AppName)
	stockGroup.Get("/", stockHandler.ListBalances)
	stockGroup.Get("/movements", adminOnly, stockHandler.ListMovements)
	stockGroup.Get("/report", adminOnly, stockHandler.Report)
	stockGroup.Get("/:group", stockHandler.GetBalance)
	stockGroup.Post("/", adminOnly, stockHandler.Credit)

	// Solicitudes de sangre (cualquier autenticado solicita; decide solo admin)
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.WorkflowUC)
	requests.Post("/", requestHandler.Submit)
	requests.Get("/mine", requestHandler.ListMine)
	requests.Get("/", adminOnly, requestHandler.List)
	requests.Get("/:id", adminOnly, requestHandler.GetByID)
	requests.Put("/:id/approve", adminOnly, requestHandler.Approve)
	requests.Put("/:id/decline", adminOnly, requestHandler.Decline)

	// Donantes (protegido, solo admin)
	donors := protected.Group("/donors", adminOnly)
	donorHandler := NewDonorHandler(deps.DonorUC)
	donors.Post("/", donorHandler.Create)
	donors.Get("/", donorHandler.List)
	donors.Get("/:id", donorHandler.GetByID)
	donors.Put("/:id", donorHandler.Update)
	donors.Delete("/:id", donorHandler.Delete)

	// Dashboard (protegido, solo admin)
	dashboard := protected.Group("/dashboard", adminOnly)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Summary)
}
