package router

import (
	"time"

	"ventapos/internal/config"
	"ventapos/internal/handler"
	"ventapos/internal/middleware"
	"ventapos/internal/repository"
	"ventapos/internal/service"
	"ventapos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashRepo := repository.NewCashRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	stockMovementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	inventorySvc := service.NewInventoryService(productRepo, stockMovementRepo)
	creditSvc := service.NewCreditService(customerRepo)
	cashSvc := service.NewCashService(cashRepo)
	saleSvc := service.NewSaleService(saleRepo, inventorySvc, creditSvc, cashSvc, cashRepo, customerRepo, dispatcher)
	expenseSvc := service.NewExpenseService(expenseRepo, cashSvc, cashRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	cashH := handler.NewCashHandler(cashSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	catalogH := handler.NewCatalogHandler(productRepo, customerRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, served from cache when warm
	r.GET("/v1/price/:barcode", catalogH.GetPriceByBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: CAJERO, ADMIN — declared per-endpoint
		v1.POST("/sales", middleware.RequireRole("CAJERO", "ADMIN"), salesH.CreateSale)
		v1.GET("/sales", middleware.RequireRole("CAJERO", "ADMIN"), salesH.ListSales)
		v1.GET("/sales/:id", middleware.RequireRole("CAJERO", "ADMIN"), salesH.GetSale)
		v1.POST("/sales/:id/payments", middleware.RequireRole("CAJERO", "ADMIN"), salesH.RecordPayment)
		v1.DELETE("/sales/:id", middleware.RequireRole("ADMIN"), salesH.AnnulSale)

		cash := v1.Group("/cash-register", middleware.RequireRole("CAJERO", "ADMIN"))
		{
			cash.POST("/open", cashH.Open)
			cash.POST("/close", cashH.Close)
			cash.GET("/status", cashH.Status)
			cash.POST("/movements", cashH.RecordMovement)
			cash.GET("/:id/movements", cashH.ListMovements)
		}

		v1.POST("/expenses", middleware.RequireRole("CAJERO", "ADMIN"), expensesH.CreateExpense)

		// Catalog reads for all authenticated roles; writes admin-only
		v1.GET("/products", middleware.RequireRole("CAJERO", "ADMIN"), catalogH.ListProducts)
		v1.POST("/products", middleware.RequireRole("ADMIN"), catalogH.CreateProduct)
		v1.GET("/customers", middleware.RequireRole("CAJERO", "ADMIN"), catalogH.ListCustomers)
		v1.GET("/customers/:id", middleware.RequireRole("CAJERO", "ADMIN"), catalogH.GetCustomer)
		v1.POST("/customers", middleware.RequireRole("ADMIN"), catalogH.CreateCustomer)

		v1.POST("/auth/users", middleware.RequireRole("ADMIN"), authH.CreateUser)
	}

	return r
}
