package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesapi/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/editing"
	"go.uber.org/mock/gomock"
)

func saleAt(id int64, date time.Time, quantity int, total, profit float64) domain.SaleRecord {
	return domain.SaleRecord{ID: id, ProductID: 1, Quantity: quantity, TotalPrice: total, Profit: profit, Date: date}
}

func sampleReport() *domain.SalesReport {
	return &domain.SalesReport{
		Meta: domain.ReportMeta{TotalProducts: 1, TotalSales: 3, TotalProfit: 30},
		Sales: []domain.SaleRecord{
			saleAt(1, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), 2, 20, 10),
			saleAt(2, time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC), 1, 10, 5),
			saleAt(3, time.Date(2024, 2, 1, 0, 30, 0, 0, time.UTC), 3, 30, 15),
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		setup    func(client *mocks.MockClient)
		validate func(t *testing.T, svc *Service, err error)
	}{
		{
			name: "agrupa por mês em UTC",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(sampleReport(), nil)
			},
			validate: func(t *testing.T, svc *Service, err error) {
				require.NoError(t, err)
				aggs := svc.Board().Aggregates()
				require.Len(t, aggs, 2)
				assert.Equal(t, domain.MonthKey("2024-01"), aggs[0].Key)
				assert.Equal(t, 3.0, aggs[0].Quantity)
				assert.Equal(t, 3, svc.Meta().TotalSales)
				assert.False(t, svc.Empty())
				assert.True(t, svc.Loaded())
			},
		},
		{
			name: "fuso configurado desloca a venda de fevereiro",
			opts: []Option{WithLocation(time.FixedZone("BRT", -3*60*60))},
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(sampleReport(), nil)
			},
			validate: func(t *testing.T, svc *Service, err error) {
				require.NoError(t, err)
				aggs := svc.Board().Aggregates()
				require.Len(t, aggs, 1)
				assert.Equal(t, 3, aggs[0].RecordCount)
			},
		},
		{
			name: "aplica os ajustes mensais gravados",
			setup: func(client *mocks.MockClient) {
				report := sampleReport()
				report.Adjustments = []domain.MonthlySalesAdjustment{
					{MonthKey: "2024-01", Quantity: 12, Price: 20},
					{MonthKey: "2024-05", Quantity: 1, Price: 9},
				}
				client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(report, nil)
			},
			validate: func(t *testing.T, svc *Service, err error) {
				require.NoError(t, err)
				aggs := svc.Board().Aggregates()
				require.Len(t, aggs, 3)
				assert.Equal(t, domain.MonthlyAggregate{Key: "2024-01", Label: "Jan", Quantity: 12, TotalRevenue: 240, TotalProfit: 240, RecordCount: 2}, aggs[0])
				assert.Equal(t, domain.MonthKey("2024-02"), aggs[1].Key)
				assert.Equal(t, domain.MonthKey("2024-05"), aggs[2].Key)
			},
		},
		{
			name: "relatório vazio não é erro",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(&domain.SalesReport{}, nil)
			},
			validate: func(t *testing.T, svc *Service, err error) {
				require.NoError(t, err)
				assert.True(t, svc.Empty())
			},
		},
		{
			name: "falha do servidor",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, svc *Service, err error) {
				assert.Error(t, err)
				assert.False(t, svc.Loaded())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			svc := NewService(client, tt.opts...)
			err := svc.Load(context.Background(), nil)
			tt.validate(t, svc, err)
		})
	}
}

func TestSave(t *testing.T) {
	key := domain.MonthKey("2024-01")

	t.Run("recalcula localmente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(sampleReport(), nil)
		client.EXPECT().UpdateMonthlySales(gomock.Any(), key, domain.MonthlySalesUpdate{Quantity: 4, Price: 5}).
			Return(&domain.MonthlySalesUpdateResult{Month: key, Quantity: 4, Price: 5}, nil)

		svc := NewService(client)
		require.NoError(t, svc.Load(context.Background(), nil))

		_, err := svc.Board().StartEdit(key)
		require.NoError(t, err)
		require.NoError(t, svc.Board().SetDraftQuantity(key, 4))
		require.NoError(t, svc.Board().SetDraftUnitPrice(key, 5))

		updated, err := svc.Save(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, 20.0, updated.TotalRevenue)
		assert.Equal(t, 20.0, updated.TotalProfit)
	})

	t.Run("recarrega do servidor mantendo o filtro e a edição gravada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		categoryID := int64(2)
		update := domain.MonthlySalesUpdate{Quantity: 12, Price: 20}

		// O servidor devolve as mesmas vendas, agora com o ajuste do mês gravado
		refreshed := sampleReport()
		refreshed.Adjustments = []domain.MonthlySalesAdjustment{{MonthKey: key, Quantity: 12, Price: 20}}

		gomock.InOrder(
			client.EXPECT().GetSalesReport(gomock.Any(), &categoryID).Return(sampleReport(), nil),
			client.EXPECT().UpdateMonthlySales(gomock.Any(), key, update).
				Return(&domain.MonthlySalesUpdateResult{Month: key, Quantity: 12, Price: 20}, nil),
			client.EXPECT().GetSalesReport(gomock.Any(), &categoryID).Return(refreshed, nil),
		)

		svc := NewService(client, WithRefetchAfterSave())
		require.NoError(t, svc.Load(context.Background(), &categoryID))

		_, err := svc.Board().StartEdit(key)
		require.NoError(t, err)
		require.NoError(t, svc.Board().SetDraftQuantity(key, 12))
		require.NoError(t, svc.Board().SetDraftUnitPrice(key, 20))

		updated, err := svc.Save(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, 12.0, updated.Quantity)
		assert.Equal(t, 240.0, updated.TotalRevenue)
		assert.Equal(t, 240.0, updated.TotalProfit)

		aggs := svc.Board().Aggregates()
		require.Len(t, aggs, 2)
		assert.Equal(t, 12.0, aggs[0].Quantity)
		assert.Equal(t, 3.0, aggs[1].Quantity)
	})

	t.Run("falha ao recarregar mantém o recálculo local", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		gomock.InOrder(
			client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(sampleReport(), nil),
			client.EXPECT().UpdateMonthlySales(gomock.Any(), key, gomock.Any()).Return(&domain.MonthlySalesUpdateResult{}, nil),
			client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(nil, errors.New("timeout")),
		)

		svc := NewService(client, WithRefetchAfterSave())
		require.NoError(t, svc.Load(context.Background(), nil))

		_, err := svc.Board().StartEdit(key)
		require.NoError(t, err)
		require.NoError(t, svc.Board().SetDraftQuantity(key, 12))
		require.NoError(t, svc.Board().SetDraftUnitPrice(key, 20))

		updated, err := svc.Save(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, 240.0, updated.TotalRevenue)
	})

	t.Run("falha no gateway preserva o rascunho", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().GetSalesReport(gomock.Any(), nil).Return(sampleReport(), nil)
		client.EXPECT().UpdateMonthlySales(gomock.Any(), key, gomock.Any()).Return(nil, errors.New("500"))

		svc := NewService(client, WithRefetchAfterSave())
		require.NoError(t, svc.Load(context.Background(), nil))
		_, err := svc.Board().StartEdit(key)
		require.NoError(t, err)

		_, err = svc.Save(context.Background(), key)
		var saveErr *editing.SaveError
		require.ErrorAs(t, err, &saveErr)

		row, ok := svc.Board().Row(key)
		require.True(t, ok)
		assert.Equal(t, editing.StateEditing, row.State)
	})
}

func TestNewServiceFromConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	_, err := NewServiceFromConfig(client, config.Dashboard{ProfitPolicy: "desconhecida"}, time.UTC)
	assert.Error(t, err)

	svc, err := NewServiceFromConfig(client, config.Dashboard{SingleEdit: true, RefetchAfterSave: true}, nil)
	require.NoError(t, err)
	assert.True(t, svc.refetch)
	assert.Equal(t, time.UTC, svc.location)
	assert.Equal(t, aggregating.CollapseProfit, svc.policy)

	svc, err = NewServiceFromConfig(client, config.Dashboard{ProfitPolicy: "preserve-unit-cost"}, nil)
	require.NoError(t, err)
	assert.Equal(t, aggregating.PreserveUnitCost, svc.policy)
}
