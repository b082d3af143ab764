package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	dataDir := flag.String("data", "data", "diretório com categories.csv, products.csv e sales.csv")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := postgres.RunMigrations(conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrations")
	}

	seedRepo := repository.NewSeedRepository(conn)

	empty, err := seedRepo.IsEmpty(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao verificar se o banco está vazio")
	}
	if !empty {
		logrus.Info("Banco já possui categorias, carga inicial ignorada")
		return
	}

	startTime := time.Now()
	data, err := loadSeedData(*dataDir, cfg.App.Location())
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler arquivos de carga inicial")
	}

	if err := seedRepo.Seed(ctx, data); err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar dados iniciais")
	}

	logrus.WithFields(logrus.Fields{
		"categories": len(data.Categories),
		"products":   len(data.Products),
		"sales":      len(data.Sales),
		"duration":   time.Since(startTime).String(),
	}).Info("✅ Dados iniciais carregados com sucesso")
}
