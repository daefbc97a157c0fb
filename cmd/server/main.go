package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/auth"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/cache"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/config"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/database"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/db"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/handlers"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/health"
	h "github.com/skyxwalker/Food-Stall-ERP-System/internal/http"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/middleware"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/repositories"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/services"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/ws"
	"github.com/skyxwalker/Food-Stall-ERP-System/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; without it logins just pay the bcrypt cost and
	// reports hit Postgres every time.
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	costRepo := repositories.NewCostEntryRepository(pool)
	stockLogRepo := repositories.NewStockLogRepository(pool)

	ensureAdmin(userRepo)

	// Auth plumbing
	jwtManager := auth.NewJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Live queue board hub
	hub := ws.NewHub()
	go hub.Run()

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	catalogService := services.NewCatalogService(itemRepo, stockLogRepo)
	saleService := services.NewSaleService(saleRepo, itemRepo, userRepo, stockLogRepo)
	saleService.Notifier = hub
	costService := services.NewCostService(costRepo, itemRepo)
	reportService := services.NewReportService(saleRepo, itemRepo, costRepo)
	queueService := services.NewQueueService(saleRepo)

	// Handlers
	healthChecker := health.NewHealthChecker(pool)
	authHandler := handlers.NewAuthHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(userService)
	itemHandler := handlers.NewItemHandler(catalogService)
	saleHandler := handlers.NewSaleHandler(saleService)
	costHandler := handlers.NewCostHandler(costService)
	reportHandler := handlers.NewReportHandler(reportService)
	queueHandler := handlers.NewQueueHandler(queueService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(authHandler, employeeHandler, itemHandler, saleHandler,
		costHandler, reportHandler, queueHandler, healthHandler, hub, authMiddleware)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Food stall ERP listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// ensureAdmin seeds the first admin account on an empty database so the
// system is usable right after install.
func ensureAdmin(userRepo *repositories.UserRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := userRepo.Count(ctx)
	if err != nil {
		log.Printf("[Seed] count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("[Seed] ADMIN_PASSWORD not set, using default; change it after first login")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("[Seed] hash admin password: %v", err)
		return
	}

	admin := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("[Seed] create admin: %v", err)
		return
	}
	log.Printf("[Seed] created admin user %q", username)
}
