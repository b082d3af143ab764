package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesapi/salesclient"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/editing"
)

// Service carrega o relatório do servidor, agrupa as vendas por mês e mantém a
// sessão de edição dos agregados
type Service struct {
	client   salesclient.Client
	board    *editing.Board
	location *time.Location
	policy   aggregating.ProfitPolicy
	refetch  bool

	mu         sync.RWMutex
	meta       domain.ReportMeta
	categoryID *int64
	loaded     bool
}

type Option func(*serviceOptions)

type serviceOptions struct {
	location     *time.Location
	policy       aggregating.ProfitPolicy
	refetch      bool
	boardOptions []editing.Option
}

// WithLocation define o fuso usado para agrupar as vendas
func WithLocation(loc *time.Location) Option {
	return func(o *serviceOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithProfitPolicy define o recálculo do lucro usado nas edições e nos ajustes gravados
func WithProfitPolicy(policy aggregating.ProfitPolicy) Option {
	return func(o *serviceOptions) {
		o.policy = policy
	}
}

// WithRefetchAfterSave recarrega o relatório depois de cada salvamento bem-sucedido
func WithRefetchAfterSave() Option {
	return func(o *serviceOptions) {
		o.refetch = true
	}
}

// WithBoardOptions repassa opções para a sessão de edição
func WithBoardOptions(opts ...editing.Option) Option {
	return func(o *serviceOptions) {
		o.boardOptions = append(o.boardOptions, opts...)
	}
}

func NewService(client salesclient.Client, opts ...Option) *Service {
	options := serviceOptions{location: time.UTC, policy: aggregating.CollapseProfit}
	for _, opt := range opts {
		opt(&options)
	}

	boardOptions := append([]editing.Option{editing.WithProfitPolicy(options.policy)}, options.boardOptions...)

	return &Service{
		client:   client,
		board:    editing.NewBoard(client, boardOptions...),
		location: options.location,
		policy:   options.policy,
		refetch:  options.refetch,
	}
}

// NewServiceFromConfig monta o serviço a partir da configuração do dashboard
func NewServiceFromConfig(client salesclient.Client, cfg config.Dashboard, loc *time.Location) (*Service, error) {
	policy, err := aggregating.ParseProfitPolicy(cfg.ProfitPolicy)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLocation(loc), WithProfitPolicy(policy)}
	if cfg.SingleEdit {
		opts = append(opts, WithBoardOptions(editing.WithSingleEdit()))
	}
	if cfg.RefetchAfterSave {
		opts = append(opts, WithRefetchAfterSave())
	}

	return NewService(client, opts...), nil
}

// Load busca o relatório (filtrado por categoria quando informado), agrupa as vendas,
// aplica os ajustes mensais gravados no servidor e substitui os agregados da sessão.
// Rascunhos abertos são descartados.
func (s *Service) Load(ctx context.Context, categoryID *int64) error {
	report, err := s.client.GetSalesReport(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("erro ao carregar relatório: %w", err)
	}

	aggregates := aggregating.ApplyAdjustments(
		aggregating.Aggregate(report.Sales, s.location),
		report.Adjustments,
		s.policy,
	)
	s.board.Load(aggregates)

	s.mu.Lock()
	s.meta = report.Meta
	s.categoryID = copyID(categoryID)
	s.loaded = true
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"months":      len(aggregates),
		"sales":       len(report.Sales),
		"adjustments": len(report.Adjustments),
	}).Debug("dashboard: relatório carregado")

	return nil
}

// Save confirma o rascunho do mês. Com refetch habilitado a coleção é recarregada
// do servidor e o agregado devolvido reflete o recálculo do servidor.
func (s *Service) Save(ctx context.Context, key domain.MonthKey) (domain.MonthlyAggregate, error) {
	updated, err := s.board.Save(ctx, key)
	if err != nil {
		return domain.MonthlyAggregate{}, err
	}

	if !s.refetch {
		return updated, nil
	}

	s.mu.RLock()
	categoryID := copyID(s.categoryID)
	s.mu.RUnlock()

	if err := s.Load(ctx, categoryID); err != nil {
		logrus.WithError(err).WithField("month", key).Warn("dashboard: falha ao recarregar após salvar, mantendo recálculo local")
		return updated, nil
	}

	if aggregate, _, ok := aggregating.Find(s.board.Aggregates(), key); ok {
		return aggregate, nil
	}

	return updated, nil
}

// Empty indica que não há vendas para exibir. Não é tratado como erro.
func (s *Service) Empty() bool {
	return len(s.board.Aggregates()) == 0
}

// Loaded indica se algum relatório já foi carregado
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Service) Meta() domain.ReportMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Board expõe a sessão de edição para a camada de apresentação
func (s *Service) Board() *editing.Board {
	return s.board
}

// Categories lista as categorias disponíveis para o filtro
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.client.GetCategories(ctx)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
