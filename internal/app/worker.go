package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-mandor/internal/kasbon"
	"go-mandor/internal/messaging/kafka"
	"go-mandor/internal/messaging/kafka/producer"
	"go-mandor/internal/notification"
	"go-mandor/internal/payroll"
	"go-mandor/internal/shared/clock"
	"go-mandor/internal/shared/connection"
	"go-mandor/internal/shared/counter"
	"go-mandor/internal/subscription"
	"go-mandor/internal/worker"

	"go.uber.org/zap"
)

const (
	outboxPollInterval     = 3 * time.Second
	settlementTickInterval = time.Minute
	expiryTickInterval     = time.Hour
	expiryBatchSize        = 100
)

// RunWorker drives the background loops: the outbox producer, the
// kasbon settlement sweep, and the subscription expiry sweep. Blocks
// until SIGINT/SIGTERM.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	notifier := notification.NewZapNotifier(zap.L())
	clk := clock.Real()

	workerRepo := worker.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	kasbonRepo := kasbon.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	subscriptionRepo := subscription.NewRepository(gormDB)

	kasbonService := kasbon.NewServiceWithOutbox(sqlDB, kasbonRepo, workerRepo, payrollRepo, counterRepo, outboxRepo)
	subscriptionService := subscription.NewService(sqlDB, subscriptionRepo, clk, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		outboxPollInterval,
	)

	go runSettlementSweep(ctx, kasbonService, kasbonRepo, logger)
	go runExpirySweep(ctx, subscriptionService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runSettlementSweep retries kasbon settlement in the background. The
// API already reconciles after approvals and payroll generation; the
// sweep picks up whatever those passes missed (a reconcile error, a
// payroll generated while no candidates existed yet).
func runSettlementSweep(ctx context.Context, svc kasbon.Service, repo kasbon.Repository, logger *zap.Logger) {
	log := logger.Named("settlement.sweep")
	ticker := time.NewTicker(settlementTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("settlement sweep stopped")
			return
		case <-ticker.C:
			companies, err := repo.ListCompaniesWithApprovedUndeducted(ctx)
			if err != nil {
				log.Error("list settlement candidates failed", zap.Error(err))
				continue
			}
			for _, companyID := range companies {
				matches, err := svc.Reconcile(ctx, companyID)
				if err != nil {
					log.Error("reconcile failed",
						zap.String("company_id", companyID),
						zap.Error(err),
					)
					continue
				}
				if len(matches) > 0 {
					log.Info("kasbons settled",
						zap.String("company_id", companyID),
						zap.Int("count", len(matches)),
					)
				}
			}
		}
	}
}

// runExpirySweep downgrades lapsed premium subscriptions. ExpireDue is
// idempotent, so overlapping ticks are harmless.
func runExpirySweep(ctx context.Context, svc subscription.Service, logger *zap.Logger) {
	log := logger.Named("subscription.sweep")
	ticker := time.NewTicker(expiryTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("expiry sweep stopped")
			return
		case <-ticker.C:
			count, err := svc.ExpireDue(ctx, expiryBatchSize)
			if err != nil {
				log.Error("expire subscriptions failed", zap.Error(err))
				continue
			}
			if count > 0 {
				log.Info("premium subscriptions expired", zap.Int("count", count))
			}
		}
	}
}
