package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	reportingmocks "github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newSnapshotService(t *testing.T) (*MonthlySnapshotSyncService, *reportingmocks.MockReporter, *mocks.MockMonthlySalesRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)

	reporter := reportingmocks.NewMockReporter(ctrl)
	monthlyRepo := mocks.NewMockMonthlySalesRepository(ctrl)

	service := &MonthlySnapshotSyncService{
		config:           MonthlySnapshotSyncConfig{CronSchedule: "0 2 * * *", SyncEnabled: true},
		location:         time.UTC,
		reporter:         reporter,
		monthlySalesRepo: monthlyRepo,
	}

	return service, reporter, monthlyRepo
}

func TestMonthlySnapshotSyncService_RunSync(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(reporter *reportingmocks.MockReporter, repo *mocks.MockMonthlySalesRepository)
		validate func(t *testing.T, service *MonthlySnapshotSyncService, err error)
	}{
		{
			name: "Grava um snapshot por mês",
			setup: func(reporter *reportingmocks.MockReporter, repo *mocks.MockMonthlySalesRepository) {
				reporter.EXPECT().GetSalesReport(gomock.Any(), domain.ReportFilter{}).Return(&domain.SalesReport{
					Sales: []domain.SaleRecord{
						{ID: 1, Quantity: 2, TotalPrice: 20, Profit: 5, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
						{ID: 2, Quantity: 1, TotalPrice: 10, Profit: 2, Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
						{ID: 3, Quantity: 4, TotalPrice: 40, Profit: 8, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
					},
				}, nil)

				repo.EXPECT().SaveSnapshots(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshots []domain.MonthlySalesSnapshot) error {
						require.Len(t, snapshots, 2)
						assert.Equal(t, domain.MonthKey("2024-01"), snapshots[0].MonthKey)
						assert.Equal(t, 3.0, snapshots[0].Quantity)
						assert.Equal(t, 30.0, snapshots[0].Revenue)
						assert.Equal(t, 7.0, snapshots[0].Profit)
						assert.Equal(t, 2, snapshots[0].SalesCount)
						assert.Equal(t, domain.MonthKey("2024-03"), snapshots[1].MonthKey)
						return nil
					})
			},
			validate: func(t *testing.T, service *MonthlySnapshotSyncService, err error) {
				require.NoError(t, err)
				status := service.GetStatus()
				assert.Equal(t, 2, status["last_sync_months"])
				assert.Equal(t, "", status["last_sync_error"])
				assert.False(t, status["sync_running"].(bool))
			},
		},
		{
			name: "Sem vendas não grava nada",
			setup: func(reporter *reportingmocks.MockReporter, repo *mocks.MockMonthlySalesRepository) {
				reporter.EXPECT().GetSalesReport(gomock.Any(), gomock.Any()).Return(&domain.SalesReport{}, nil)
			},
			validate: func(t *testing.T, service *MonthlySnapshotSyncService, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "Erro ao carregar vendas é registrado no status",
			setup: func(reporter *reportingmocks.MockReporter, repo *mocks.MockMonthlySalesRepository) {
				reporter.EXPECT().GetSalesReport(gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, service *MonthlySnapshotSyncService, err error) {
				require.Error(t, err)
				assert.Contains(t, service.GetStatus()["last_sync_error"], "conexão perdida")
			},
		},
		{
			name: "Erro ao gravar snapshots",
			setup: func(reporter *reportingmocks.MockReporter, repo *mocks.MockMonthlySalesRepository) {
				reporter.EXPECT().GetSalesReport(gomock.Any(), gomock.Any()).Return(&domain.SalesReport{
					Sales: []domain.SaleRecord{{ID: 1, Quantity: 1, TotalPrice: 1, Date: time.Now()}},
				}, nil)
				repo.EXPECT().SaveSnapshots(gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))
			},
			validate: func(t *testing.T, service *MonthlySnapshotSyncService, err error) {
				assert.ErrorContains(t, err, "erro ao gravar snapshots mensais")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, reporter, repo := newSnapshotService(t)
			tt.setup(reporter, repo)

			err := service.RunSync(context.Background())
			tt.validate(t, service, err)
		})
	}
}

func TestMonthlySnapshotSyncService_RejectsOverlappingRuns(t *testing.T) {
	service, reporter, _ := newSnapshotService(t)

	started := make(chan struct{})
	release := make(chan struct{})
	reporter.EXPECT().GetSalesReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.ReportFilter) (*domain.SalesReport, error) {
			close(started)
			<-release
			return &domain.SalesReport{}, nil
		})

	done := make(chan error, 1)
	go func() { done <- service.RunSync(context.Background()) }()
	<-started

	assert.ErrorIs(t, service.RunSync(context.Background()), ErrSyncRunning)
	assert.ErrorIs(t, service.TriggerManualSync(), ErrSyncRunning)
	assert.True(t, service.GetStatus()["sync_running"].(bool))

	close(release)
	require.NoError(t, <-done)
}

func TestMonthlySnapshotSyncService_StartDisabled(t *testing.T) {
	service := NewMonthlySnapshotSyncService(nil, nil, &config.Config{
		MonthlySnapshotSync: config.MonthlySnapshotSync{CronSchedule: "0 2 * * *", Enabled: false},
	})

	require.NoError(t, service.Start(context.Background()))
	assert.False(t, service.GetStatus()["sync_enabled"].(bool))
}

func TestMonthlySnapshotSyncService_StartInvalidCron(t *testing.T) {
	service := NewMonthlySnapshotSyncService(nil, nil, &config.Config{
		MonthlySnapshotSync: config.MonthlySnapshotSync{CronSchedule: "não é cron", Enabled: true},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
