package forecast

import (
	"fmt"
	"sync"

	"github.com/etnz/forecast/date"
	"go.uber.org/zap"
)

// Model is a simulation context: the entities, the transfers between them
// and the parameters of the timeline.
//
// Models are independent from one another. A model is not safe for
// concurrent use while it runs, and Run rejects a second concurrent call.
type Model struct {
	Params    Parameters
	Entities  Entities
	Transfers Transfers

	logger  *zap.Logger
	running sync.Mutex
	ran     date.Range // timeline of the last successful run.
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used during runs.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithParameters sets the model parameters.
func WithParameters(p Parameters) Option {
	return func(m *Model) { m.Params = p }
}

// NewModel returns an empty model.
func NewModel(opts ...Option) *Model {
	m := &Model{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	if m.Params.Currency == "" {
		m.Params.Currency = DefaultCurrency
	}
	return m
}

// Logger returns the model logger.
func (m *Model) Logger() *zap.Logger { return m.logger }

// AddEntity adds an entity to the model and returns its id.
func (m *Model) AddEntity(e *Entity) (string, error) { return m.Entities.Add(e) }

// AddTransfer adds a transfer to the model and returns its id.
//
// Both parties must be entities of the model or External, and not both External.
func (m *Model) AddTransfer(t Transfer) (string, error) {
	from, to := t.Parties()
	for _, r := range []Ref{from, to} {
		if _, err := m.Entities.Resolve(r); err != nil {
			return "", fmt.Errorf("cannot add transfer: %w", err)
		}
	}
	return m.Transfers.Add(t)
}

// definitions returns every transfer of the model: first the implicit ones
// each entity carries (its initial value, then the deposit of its accruals),
// in entity order, then the model transfers in insertion order.
//
// 'start' is the timeline start, when chequing accounts are opened.
func (m *Model) definitions(start date.Date) []Transfer {
	transfers := make([]Transfer, 0, 2*m.Entities.Len()+m.Transfers.Len())
	for e := range m.Entities.All() {
		opening := e.Start
		if e.Kind == Chequing {
			opening = start
		}
		transfers = append(transfers, NewOneTime(e.Source, e.Ref(), e.InitialValue, opening).withID(e.ID+"/initial"))
		if e.Kind.Buffered() {
			deposit := NewRecurringOf(External, e.Ref(), DrainAccrualBuffer{Entity: e.ID}, e.Start, date.Date{}, e.Deposit)
			transfers = append(transfers, deposit.withID(e.ID+"/accruals"))
		}
	}
	for t := range m.Transfers.All() {
		transfers = append(transfers, t)
	}
	return transfers
}

// Schedule builds the timeline schedule of the model.
func (m *Model) Schedule() (*Schedule, error) {
	r, err := m.Timeline()
	if err != nil {
		return nil, err
	}
	return BuildSchedule(r.From, r.To, m.Params.Record, m.definitions(r.From))
}

// reset clears the simulation state of every entity.
func (m *Model) reset() {
	for e := range m.Entities.All() {
		e.reset()
	}
	m.ran = date.Range{}
}
