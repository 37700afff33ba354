package app

import (
	"database/sql"
	"path/filepath"

	"go-mandor/internal/attendance"
	"go-mandor/internal/auth"
	"go-mandor/internal/kasbon"
	"go-mandor/internal/material"
	"go-mandor/internal/messaging/kafka"
	"go-mandor/internal/middleware"
	"go-mandor/internal/notification"
	"go-mandor/internal/overtime"
	"go-mandor/internal/payroll"
	"go-mandor/internal/project"
	"go-mandor/internal/quota"
	"go-mandor/internal/rbac"
	"go-mandor/internal/rbac/infra"
	"go-mandor/internal/report"
	"go-mandor/internal/shared/clock"
	"go-mandor/internal/shared/counter"
	"go-mandor/internal/subscription"
	"go-mandor/internal/transaction"
	"go-mandor/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	workerRepo := worker.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	overtimeRepo := overtime.NewRepository(gormDB)
	kasbonRepo := kasbon.NewRepository(gormDB)
	quotaRepo := quota.NewRepository(gormDB)
	subscriptionRepo := subscription.NewRepository(gormDB)
	transactionRepo := transaction.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	materialRepo := material.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	notifier := notification.NewZapNotifier(zap.L())
	clk := clock.Real()

	// --- Services ---
	subscriptionService := subscription.NewService(db, subscriptionRepo, clk, notifier)
	quotaService := quota.NewService(db, quotaRepo, clk, notifier)
	authService := auth.NewService(authRepo, rbacService, subscriptionService)
	workerService := worker.NewServiceWithOutbox(db, workerRepo, counterRepo, outboxRepo, rdb)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, workerRepo, overtimeRepo, outboxRepo)
	overtimeService := overtime.NewService(db, overtimeRepo, workerRepo, payrollRepo)
	kasbonService := kasbon.NewServiceWithOutbox(db, kasbonRepo, workerRepo, payrollRepo, counterRepo, outboxRepo)
	transactionService := transaction.NewService(db, transactionRepo, projectRepo)
	projectService := project.NewService(db, projectRepo)
	materialService := material.NewService(db, materialRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, workerRepo)
	reportService := report.NewService(transactionRepo, payrollRepo, overtimeRepo, projectRepo, workerRepo, rdb)

	// Every mutating route passes through the monthly action quota.
	actionQuota := middleware.ActionQuota(quotaService, subscriptionService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	workerHandler := worker.NewHandler(workerService)
	// The kasbon service doubles as the payroll handler's settlement
	// engine: generating a payroll can settle waiting kasbons.
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, kasbonService, rdb)
	overtimeHandler := overtime.NewHandler(overtimeService)
	kasbonHandler := kasbon.NewHandler(kasbonService)
	transactionHandler := transaction.NewHandler(transactionService)
	projectHandler := project.NewHandler(projectService)
	materialHandler := material.NewHandler(materialService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	reportHandler := report.NewHandler(reportService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	quotaHandler := quota.NewHandler(quotaService, subscriptionService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		worker.RegisterRoutes(api, workerHandler, rbacService, actionQuota)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, actionQuota, rdb)
		overtime.RegisterRoutes(api, overtimeHandler, rbacService, actionQuota)
		kasbon.RegisterRoutes(api, kasbonHandler, rbacService, actionQuota)
		transaction.RegisterRoutes(api, transactionHandler, rbacService, actionQuota)
		project.RegisterRoutes(api, projectHandler, rbacService, actionQuota)
		material.RegisterRoutes(api, materialHandler, rbacService, actionQuota)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, actionQuota)
		report.RegisterRoutes(api, reportHandler, rbacService)
		subscription.RegisterRoutes(api, subscriptionHandler)
		quota.RegisterRoutes(api, quotaHandler)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
