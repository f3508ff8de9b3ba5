package router

import (
	"github.com/wirunw/pms2025/internal/config"
	"github.com/wirunw/pms2025/internal/handler"
	"github.com/wirunw/pms2025/internal/middleware"
	"github.com/wirunw/pms2025/internal/repository"
	"github.com/wirunw/pms2025/internal/service"
	"github.com/wirunw/pms2025/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	drugRepo := repository.NewDrugRepository(db)
	lotRepo := repository.NewLotRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	inventorySvc := service.NewInventoryService(lotRepo, drugRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	tolerance, err := decimal.NewFromString(cfg.SaleTotalTolerance)
	if err != nil {
		tolerance = decimal.NewFromFloat(0.01)
	}
	saleSvc := service.NewSaleService(saleRepo, inventorySvc, drugRepo, dispatcher, tolerance)

	classifier := service.NewRegulatoryClassifier(
		config.SplitKeywords(cfg.DangerousKeywords),
		config.SplitKeywords(cfg.ControlledKeywords),
	)
	reportSvc := service.NewReportService(saleRepo, lotRepo, drugRepo, classifier, service.ReportOptions{
		NearExpiryDays: cfg.NearExpiryDays,
		SlowMovingDays: cfg.SlowMovingDays,
	})
	exportSvc := service.NewExportService(memberRepo, staffRepo, lotRepo, saleRepo, drugRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	drugsH := handler.NewDrugsHandler(drugRepo, lotRepo)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	salesH := handler.NewSalesHandler(saleSvc)
	membersH := handler.NewMembersHandler(memberRepo)
	staffH := handler.NewStaffHandler(staffRepo)
	reportsH := handler.NewReportsHandler(reportSvc, exportSvc)
	priceH := handler.NewPriceCheckHandler(lotRepo, drugRepo, rdb)
	activityH := handler.NewActivityHandler(activityRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/price/:barcode", priceH.GetPriceByBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole("user", "admin")
	adminOnly := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", anyRole, authH.Me)
		v1.POST("/auth/password", anyRole, authH.ChangePassword)

		v1.POST("/sales", anyRole, salesH.Record)
		v1.GET("/sales", anyRole, salesH.Recent)

		v1.GET("/drugs", anyRole, drugsH.List)
		v1.GET("/drugs/:drugId", anyRole, drugsH.Get)
		v1.POST("/drugs", adminOnly, drugsH.Create)
		v1.GET("/drugs/:drugId/lots", anyRole, inventoryH.SellableLots)

		v1.POST("/inventory", anyRole, inventoryH.Receive)
		v1.GET("/inventory/summary", anyRole, inventoryH.Summary)

		v1.GET("/members", anyRole, membersH.List)
		v1.GET("/members/:memberId", anyRole, membersH.Get)
		v1.POST("/members", anyRole, membersH.Create)
		v1.GET("/members/:memberId/purchases", anyRole, salesH.MemberPurchases)

		v1.GET("/staff", anyRole, staffH.List)
		v1.GET("/staff/:staffId", anyRole, staffH.Get)
		v1.POST("/staff", adminOnly, staffH.Create)

		v1.GET("/reports/:period", adminOnly, reportsH.Get)
		v1.GET("/reports/:period/export", adminOnly, reportsH.Export)
		v1.GET("/export/:table", adminOnly, reportsH.ExportTable)

		v1.GET("/activity", adminOnly, activityH.Recent)

		users := v1.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.POST("/:id/reset-password", authH.ResetPassword)
			users.DELETE("/:id", authH.Deactivate)
			users.PATCH("/:id/reactivate", authH.Reactivate)
		}
	}

	return r
}
