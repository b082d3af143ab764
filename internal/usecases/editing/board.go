package editing

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
)

// State é o estado de edição de uma linha
type State int

const (
	StateView State = iota
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "view"
	}
}

// Gateway aplica no servidor a quantidade e o preço editados de um mês
type Gateway interface {
	UpdateMonthlySales(ctx context.Context, key domain.MonthKey, update domain.MonthlySalesUpdate) (*domain.MonthlySalesUpdateResult, error)
}

// Draft contém os valores ainda não confirmados de uma linha
type Draft struct {
	Quantity  float64
	UnitPrice float64
}

// RowView é a visão de uma linha para a camada de apresentação
type RowView struct {
	Aggregate domain.MonthlyAggregate
	State     State
	Draft     *Draft
	LastError error
}

// IsEditing indica se a linha tem um rascunho aberto (inclusive durante o salvamento)
func (r RowView) IsEditing() bool {
	return r.State != StateView
}

type row struct {
	state   State
	draft   Draft
	lastErr error
}

// Board mantém a coleção de agregados mensais e o estado de edição de cada linha.
// A coleção nunca é alterada in-place: cada commit gera uma nova fatia.
type Board struct {
	mu         sync.Mutex
	gateway    Gateway
	aggregates []domain.MonthlyAggregate
	rows       map[domain.MonthKey]*row
	singleEdit bool
	policy     aggregating.ProfitPolicy
}

type Option func(*Board)

// WithSingleEdit impede que duas linhas fiquem em edição ao mesmo tempo
func WithSingleEdit() Option {
	return func(b *Board) {
		b.singleEdit = true
	}
}

// WithProfitPolicy define como o lucro é recalculado após salvar
func WithProfitPolicy(policy aggregating.ProfitPolicy) Option {
	return func(b *Board) {
		b.policy = policy
	}
}

func NewBoard(gateway Gateway, opts ...Option) *Board {
	b := &Board{
		gateway:    gateway,
		aggregates: []domain.MonthlyAggregate{},
		rows:       make(map[domain.MonthKey]*row),
		policy:     aggregating.CollapseProfit,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Load substitui a coleção inteira (ex.: após buscar o relatório) e descarta rascunhos.
// Linhas que estão salvando mantêm o bloqueio até a resposta do gateway.
func (b *Board) Load(aggregates []domain.MonthlyAggregate) {
	snapshot := make([]domain.MonthlyAggregate, len(aggregates))
	copy(snapshot, aggregates)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.aggregates = snapshot
	for key, r := range b.rows {
		if r.state != StateSaving {
			delete(b.rows, key)
		}
	}
}

// Aggregates devolve uma cópia da coleção atual
func (b *Board) Aggregates() []domain.MonthlyAggregate {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]domain.MonthlyAggregate, len(b.aggregates))
	copy(result, b.aggregates)
	return result
}

// Row devolve o agregado e o estado de edição de uma linha
func (b *Board) Row(key domain.MonthKey) (RowView, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	aggregate, _, ok := aggregating.Find(b.aggregates, key)
	if !ok {
		return RowView{}, false
	}

	view := RowView{Aggregate: aggregate, State: StateView}
	if r, exists := b.rows[key]; exists {
		draft := r.draft
		view.State = r.state
		view.Draft = &draft
		view.LastError = r.lastErr
	}

	return view, true
}

// StartEdit abre a edição de uma linha com o rascunho inicial derivado do agregado.
// Se a linha já estiver em edição, o rascunho atual é devolvido sem alteração.
func (b *Board) StartEdit(key domain.MonthKey) (Draft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	aggregate, _, ok := aggregating.Find(b.aggregates, key)
	if !ok {
		return Draft{}, ErrRowNotFound
	}

	if r, exists := b.rows[key]; exists {
		return r.draft, nil
	}

	if b.singleEdit && len(b.rows) > 0 {
		return Draft{}, ErrAnotherRowEditing
	}

	r := &row{
		state: StateEditing,
		draft: Draft{
			Quantity:  aggregate.Quantity,
			UnitPrice: aggregating.SeedUnitPrice(aggregate),
		},
	}
	b.rows[key] = r

	return r.draft, nil
}

// SetDraftQuantity altera apenas a quantidade do rascunho
func (b *Board) SetDraftQuantity(key domain.MonthKey, quantity float64) error {
	return b.updateDraft(key, quantity, func(d *Draft) { d.Quantity = quantity })
}

// SetDraftUnitPrice altera apenas o preço unitário do rascunho
func (b *Board) SetDraftUnitPrice(key domain.MonthKey, unitPrice float64) error {
	return b.updateDraft(key, unitPrice, func(d *Draft) { d.UnitPrice = unitPrice })
}

func (b *Board) updateDraft(key domain.MonthKey, value float64, apply func(*Draft)) error {
	if value < 0 {
		return ErrNegativeValue
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	r, err := b.editingRow(key)
	if err != nil {
		return err
	}

	apply(&r.draft)
	return nil
}

// Cancel descarta o rascunho e volta a linha para visualização
func (b *Board) Cancel(key domain.MonthKey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.editingRow(key); err != nil {
		return err
	}

	delete(b.rows, key)
	return nil
}

// Save envia o rascunho ao gateway. Enquanto a requisição está em andamento a linha
// fica bloqueada; uma segunda chamada para a mesma linha retorna ErrSaveInProgress.
// Em caso de sucesso o agregado é recalculado e a linha volta para visualização;
// em caso de falha a linha continua em edição com o rascunho preservado.
func (b *Board) Save(ctx context.Context, key domain.MonthKey) (domain.MonthlyAggregate, error) {
	b.mu.Lock()
	r, err := b.editingRow(key)
	if err != nil {
		b.mu.Unlock()
		return domain.MonthlyAggregate{}, err
	}
	r.state = StateSaving
	r.lastErr = nil
	draft := r.draft
	b.mu.Unlock()

	_, err = b.gateway.UpdateMonthlySales(ctx, key, domain.MonthlySalesUpdate{
		Quantity: draft.Quantity,
		Price:    draft.UnitPrice,
	})

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		saveErr := &SaveError{Key: key, Err: err}
		r.state = StateEditing
		r.lastErr = saveErr
		logrus.WithError(err).WithField("month", key).Warn("editing: falha ao salvar vendas mensais, rascunho preservado")
		return domain.MonthlyAggregate{}, saveErr
	}

	delete(b.rows, key)

	aggregate, _, ok := aggregating.Find(b.aggregates, key)
	if !ok {
		// A coleção foi recarregada sem este mês durante o salvamento
		logrus.WithField("month", key).Warn("editing: mês salvo não está mais na coleção")
		return domain.MonthlyAggregate{}, ErrRowNotFound
	}

	updated := aggregating.ApplyEdit(aggregate, draft.Quantity, draft.UnitPrice, b.policy)
	b.aggregates = aggregating.Replace(b.aggregates, updated)

	return updated, nil
}

func (b *Board) editingRow(key domain.MonthKey) (*row, error) {
	r, exists := b.rows[key]
	if !exists {
		if _, _, ok := aggregating.Find(b.aggregates, key); !ok {
			return nil, ErrRowNotFound
		}
		return nil, ErrNotEditing
	}

	if r.state == StateSaving {
		return nil, ErrSaveInProgress
	}

	return r, nil
}
