package reporting

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
)

// Reporter expõe o relatório de vendas e os agregados mensais
type Reporter interface {
	GetSalesReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetMonthlySales(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyAggregate, error)
	GetAvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error)
	UpdateMonthlySales(ctx context.Context, monthKey string, update domain.MonthlySalesUpdate) (*domain.MonthlySalesUpdateResult, error)
	InvalidateCache(ctx context.Context)
}

type Service struct {
	categoryRepository     repository.CategoryRepository
	productRepository      repository.ProductRepository
	saleRepository         repository.SaleRepository
	monthlySalesRepository repository.MonthlySalesRepository
	cache                  cache.ReportCache
	location               *time.Location
	policy                 aggregating.ProfitPolicy
	validate               *validator.Validate
	now                    func() time.Time
}

type Option func(*Service)

// WithLocation define o fuso usado para agrupar as vendas por mês
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithProfitPolicy define o recálculo aplicado aos meses ajustados
func WithProfitPolicy(policy aggregating.ProfitPolicy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	monthlySalesRepo repository.MonthlySalesRepository,
	opts ...Option,
) *Service {
	s := &Service{
		categoryRepository:     categoryRepo,
		productRepository:      productRepo,
		saleRepository:         saleRepo,
		monthlySalesRepository: monthlySalesRepo,
		location:               time.UTC,
		policy:                 aggregating.CollapseProfit,
		validate:               validator.New(validator.WithRequiredStructEnabled()),
		now:                    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCache habilita o cache de relatórios
func (s *Service) WithCache(reportCache cache.ReportCache) *Service {
	s.cache = reportCache
	return s
}

// InvalidateCache descarta os relatórios em cache. Falhas são apenas registradas.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("Falha ao invalidar cache de relatórios")
	}
}

func (s *Service) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepository.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar categorias")
		return nil, ErrDatabaseOperation
	}

	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	return categories, nil
}
