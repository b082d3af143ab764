package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

// ErrSyncRunning indica que já existe uma sincronização em andamento
var ErrSyncRunning = errors.New("sincronização de snapshots mensais já em andamento")

// MonthlySnapshotSyncConfig representa a configuração do agendador de snapshots mensais
type MonthlySnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// MonthlySnapshotSyncService agrega todas as vendas por mês e grava o resultado em
// monthly_sales_snapshots, de onde saem os períodos disponíveis do dashboard
type MonthlySnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlySnapshotSyncConfig
	location            *time.Location
	reporter            reporting.Reporter
	monthlySalesRepo    repository.MonthlySalesRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncMonths      int
	lastSyncError       string
}

func NewMonthlySnapshotSyncService(
	reporter reporting.Reporter,
	monthlySalesRepo repository.MonthlySalesRepository,
	appConfig *config.Config,
) *MonthlySnapshotSyncService {
	syncConfig := MonthlySnapshotSyncConfig{
		CronSchedule: appConfig.MonthlySnapshotSync.CronSchedule,
		SyncEnabled:  appConfig.MonthlySnapshotSync.Enabled,
	}
	location := appConfig.App.Location()

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"timezone":      location.String(),
	}).Info("Configuração do agendador de snapshots mensais carregada")

	return &MonthlySnapshotSyncService{
		scheduler:        gocron.NewScheduler(location),
		config:           syncConfig,
		location:         location,
		reporter:         reporter,
		monthlySalesRepo: monthlySalesRepo,
	}
}

// Start inicia o agendador. O agendador é parado quando ctx é cancelado.
func (s *MonthlySnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots mensais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots mensais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSync(ctx); err != nil && !errors.Is(err, ErrSyncRunning) {
			logrus.WithError(err).WithField("job", "monthly-snapshot").Error("Erro na sincronização agendada de snapshots")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots mensais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots mensais")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSync executa a sincronização de forma síncrona. Execuções sobrepostas retornam ErrSyncRunning.
func (s *MonthlySnapshotSyncService) RunSync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots mensais já em andamento, ignorando")
		return ErrSyncRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	months, err := s.syncSnapshots(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
		s.lastSyncMonths = months
		s.lastSyncCompletedAt = time.Now()
	}
	s.syncMutex.Unlock()

	return err
}

func (s *MonthlySnapshotSyncService) syncSnapshots(ctx context.Context) (int, error) {
	startTime := time.Now()
	logrus.WithField("job", "monthly-snapshot").Info("Iniciando sincronização de snapshots mensais")

	report, err := s.reporter.GetSalesReport(ctx, domain.ReportFilter{})
	if err != nil {
		return 0, fmt.Errorf("erro ao carregar vendas: %w", err)
	}

	aggregates := aggregating.Aggregate(report.Sales, s.location)
	if len(aggregates) == 0 {
		logrus.Info("Nenhuma venda encontrada para gerar snapshots mensais")
		return 0, nil
	}

	now := time.Now().UTC()
	snapshots := make([]domain.MonthlySalesSnapshot, 0, len(aggregates))
	for _, aggregate := range aggregates {
		snapshots = append(snapshots, domain.MonthlySalesSnapshot{
			MonthKey:   aggregate.Key,
			Quantity:   aggregate.Quantity,
			Revenue:    aggregate.TotalRevenue,
			Profit:     aggregate.TotalProfit,
			SalesCount: aggregate.RecordCount,
			UpdatedAt:  now,
		})
	}

	if err := s.monthlySalesRepo.SaveSnapshots(ctx, snapshots); err != nil {
		return 0, fmt.Errorf("erro ao gravar snapshots mensais: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"job":      "monthly-snapshot",
		"months":   len(snapshots),
		"duration": time.Since(startTime).String(),
	}).Info("Sincronização de snapshots mensais concluída")

	return len(snapshots), nil
}

// TriggerManualSync inicia manualmente uma sincronização em segundo plano
func (s *MonthlySnapshotSyncService) TriggerManualSync() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de snapshots mensais já em andamento, ignorando solicitação manual")
		return ErrSyncRunning
	}

	logrus.Info("Iniciando sincronização manual de snapshots mensais")
	go func() {
		if err := s.RunSync(context.Background()); err != nil && !errors.Is(err, ErrSyncRunning) {
			logrus.WithError(err).WithField("job", "monthly-snapshot").Error("Erro na sincronização manual de snapshots")
		}
	}()

	return nil
}

// GetStatus retorna o status atual da sincronização
func (s *MonthlySnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_months":       s.lastSyncMonths,
		"last_sync_error":        s.lastSyncError,
	}
}
