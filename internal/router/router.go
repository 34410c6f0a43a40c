package router

import (
	"time"

	"pharmapos/internal/config"
	"pharmapos/internal/handler"
	"pharmapos/internal/middleware"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"
	"pharmapos/internal/service"
	"pharmapos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus
// the prediction service the worker pool consumes.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, service.PredictionService) {
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
	medicineRepo := repository.NewMedicineRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	userRepo := repository.NewUserRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	medicineSvc := service.NewMedicineService(medicineRepo, purchaseRepo, dispatcher)
	supplierSvc := service.NewSupplierService(supplierRepo)
	orderSvc := service.NewOrderService(orderRepo)
	saleSvc := service.NewSaleService(saleRepo, dispatcher)
	reportSvc := service.NewReportService(saleRepo)
	predictionSvc := service.NewPredictionService(predictionRepo, medicineRepo, saleRepo, cfg.RestockThreshold)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	medicinesH := handler.NewMedicinesHandler(medicineSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	predictionsH := handler.NewPredictionsHandler(predictionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/cashier/register", authH.RegisterCashier)
		auth.POST("/cashier/login", middleware.LoginRateLimiter(), authH.LoginCashier)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)

	staff := middleware.RequireRole(model.RoleAdmin, model.RoleCashier)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	{
		// Catalog reads — any authenticated role; writes are admin-only
		api.GET("/medicines", medicinesH.List)
		api.GET("/medicines/next-id", medicinesH.NextIDs)
		api.GET("/medicines/search", medicinesH.Search)
		api.GET("/medicines/names", medicinesH.ListNames)
		api.GET("/medicines/purchases", medicinesH.PurchaseHistory)
		api.GET("/medicines/:id", medicinesH.GetByID)

		meds := api.Group("/medicines", adminOnly)
		{
			meds.POST("", medicinesH.Create)
			meds.PUT("/:id", medicinesH.Update)
			meds.DELETE("/:id", medicinesH.Delete)
		}

		api.GET("/suppliers", suppliersH.List)
		api.GET("/suppliers/:id", suppliersH.GetByID)

		suppliers := api.Group("/suppliers", adminOnly)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}

		orders := api.Group("/supplierorders", adminOnly)
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.GetByID)
			orders.PUT("/:id", ordersH.Update)
			orders.DELETE("/:id", ordersH.Delete)
		}

		// Point of sale — cashiers and admins
		sales := api.Group("/sales", staff)
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/today", salesH.ListToday)
			sales.GET("/:id", salesH.GetByID)
			sales.PUT("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
		}

		reports := api.Group("/sales-report", adminOnly)
		{
			reports.GET("/annual/:year", reportsH.AnnualSales)
			reports.GET("/medicine-distribution", reportsH.MedicineDistribution)
		}

		api.GET("/predictions", adminOnly, predictionsH.List)
	}

	return r, predictionSvc
}
