package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/handlers"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/middleware"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/ws"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	itemHandler *handlers.ItemHandler,
	saleHandler *handlers.SaleHandler,
	costHandler *handlers.CostHandler,
	reportHandler *handlers.ReportHandler,
	queueHandler *handlers.QueueHandler,
	healthHandler *handlers.HealthHandler,
	hub *ws.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	admin := authMiddleware.RequireRole(models.RoleAdmin)
	adminOrServer := authMiddleware.RequireRole(models.RoleAdmin, models.RoleServer)
	prepStaff := authMiddleware.RequireRole(models.RoleAdmin, models.RoleEmployee)

	// Protected API routes - Menu items
	itemsAPI := r.PathPrefix("/api/items").Subrouter()
	itemsAPI.Use(authMiddleware.Authenticate)
	itemsAPI.HandleFunc("", itemHandler.ListItems).Methods("GET")
	itemsAPI.HandleFunc("", admin(http.HandlerFunc(itemHandler.CreateItem)).ServeHTTP).Methods("POST")
	itemsAPI.HandleFunc("/{id}", itemHandler.GetItem).Methods("GET")
	itemsAPI.HandleFunc("/{id}", admin(http.HandlerFunc(itemHandler.UpdateItem)).ServeHTTP).Methods("PUT")
	itemsAPI.HandleFunc("/{id}", admin(http.HandlerFunc(itemHandler.DeleteItem)).ServeHTTP).Methods("DELETE")
	itemsAPI.HandleFunc("/{id}/stock-logs", admin(http.HandlerFunc(itemHandler.ListStockLogs)).ServeHTTP).Methods("GET")

	// Protected API routes - Employees (admin only)
	employeesAPI := r.PathPrefix("/api/employees").Subrouter()
	employeesAPI.Use(authMiddleware.Authenticate)
	employeesAPI.HandleFunc("", employeeHandler.ListEmployees).Methods("GET")
	employeesAPI.HandleFunc("", admin(http.HandlerFunc(employeeHandler.CreateEmployee)).ServeHTTP).Methods("POST")
	employeesAPI.HandleFunc("/{id}", admin(http.HandlerFunc(employeeHandler.UpdateEmployee)).ServeHTTP).Methods("PUT")
	employeesAPI.HandleFunc("/{id}", admin(http.HandlerFunc(employeeHandler.DeleteEmployee)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Sale ledger
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(authMiddleware.Authenticate)
	salesAPI.HandleFunc("", admin(http.HandlerFunc(saleHandler.CreateSale)).ServeHTTP).Methods("POST")
	salesAPI.HandleFunc("", adminOrServer(http.HandlerFunc(saleHandler.ListSales)).ServeHTTP).Methods("GET")
	salesAPI.HandleFunc("/credit", admin(http.HandlerFunc(saleHandler.OutstandingCredit)).ServeHTTP).Methods("GET")
	salesAPI.HandleFunc("/{saleId}/items/{itemId}/done", prepStaff(http.HandlerFunc(saleHandler.MarkItemDone)).ServeHTTP).Methods("PATCH")
	salesAPI.HandleFunc("/{saleId}/payment-method", admin(http.HandlerFunc(saleHandler.UpdatePaymentMethod)).ServeHTTP).Methods("PUT")

	// Protected API routes - Queue boards
	queuesAPI := r.PathPrefix("/api/queues").Subrouter()
	queuesAPI.Use(authMiddleware.Authenticate)
	queuesAPI.HandleFunc("/employee", authMiddleware.RequireRole(models.RoleEmployee)(http.HandlerFunc(queueHandler.EmployeeQueue)).ServeHTTP).Methods("GET")
	queuesAPI.HandleFunc("/staff", adminOrServer(http.HandlerFunc(queueHandler.StaffQueue)).ServeHTTP).Methods("GET")

	// Protected API routes - Cost ledger (admin only)
	costsAPI := r.PathPrefix("/api/costs").Subrouter()
	costsAPI.Use(authMiddleware.RequireRole(models.RoleAdmin))
	costsAPI.HandleFunc("", costHandler.ListCosts).Methods("GET")
	costsAPI.HandleFunc("", costHandler.CreateCost).Methods("POST")
	costsAPI.HandleFunc("/{id}", costHandler.UpdateCost).Methods("PUT")
	costsAPI.HandleFunc("/{id}", costHandler.DeleteCost).Methods("DELETE")

	// Protected API routes - Reports (admin only)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.RequireRole(models.RoleAdmin))
	reportsAPI.HandleFunc("/profit-loss", reportHandler.ProfitLoss).Methods("GET")
	reportsAPI.HandleFunc("/profit-loss/pdf", reportHandler.ProfitLossPDF).Methods("GET")
	reportsAPI.HandleFunc("/dashboard", reportHandler.Dashboard).Methods("GET")

	// WebSocket for live queue boards
	r.HandleFunc("/ws/orders", hub.HandleWebSocket)

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
