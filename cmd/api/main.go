package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/cataloging"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.RunMigrations(pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrations")
		}
	}

	categoryRepo := repository.NewCategoryRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	monthlySalesRepo := repository.NewMonthlySalesRepository(pgConn)

	policy, err := aggregating.ParseProfitPolicy(cfg.Dashboard.ProfitPolicy)
	if err != nil {
		logrus.WithError(err).Fatal("Política de lucro inválida")
	}

	reportService := reporting.NewService(
		categoryRepo,
		productRepo,
		saleRepo,
		monthlySalesRepo,
		reporting.WithLocation(cfg.App.Location()),
		reporting.WithProfitPolicy(policy),
	)

	// Cache de relatórios é opcional; sem Redis os relatórios vêm sempre do banco
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis indisponível, seguindo sem cache de relatórios")
		} else {
			defer redisClient.Close()
			reportService = reportService.WithCache(cache.NewRedisReportCache(redisClient, cfg.Redis.TTL))
			logrus.Info("Cache de relatórios habilitado")
		}
	}

	catalogService := cataloging.NewService(
		categoryRepo,
		productRepo,
		reportService,
		cfg.Upload.Dir,
		cfg.Upload.MaxBytes(),
	)

	exportService := exporting.NewService(reportService)

	snapshotSyncService := scheduler.NewMonthlySnapshotSyncService(reportService, monthlySalesRepo, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots mensais")
	} else {
		logrus.Info("Agendador de snapshots mensais iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		catalogService,
		exportService,
		handler.CronJobServices{MonthlySnapshotSyncService: snapshotSyncService},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
