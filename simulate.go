package forecast

import (
	"context"
	"time"

	"github.com/etnz/forecast/date"
	"go.uber.org/zap"
)

// Run builds the model schedule and replays it.
//
// Every run starts from scratch: entity values, accrual buffers and
// histories are reset, and each entity balance is re-established by its
// initial value transfer. Running twice an unchanged model yields the same
// histories.
//
// Run returns ErrRunning if another run is in progress on m. On any error
// the entities are left reset, with an empty history.
func (m *Model) Run(ctx context.Context) error {
	if !m.running.TryLock() {
		return ErrRunning
	}
	defer m.running.Unlock()

	s, err := m.Schedule()
	if err != nil {
		return err
	}
	return m.replay(ctx, s)
}

// Replay replays a schedule built outside the model, see Run.
func (m *Model) Replay(ctx context.Context, s *Schedule) error {
	if !m.running.TryLock() {
		return ErrRunning
	}
	defer m.running.Unlock()
	return m.replay(ctx, s)
}

func (m *Model) replay(ctx context.Context, s *Schedule) error {
	began := time.Now()
	m.reset()
	dates := s.Dates()
	m.logger.Info("simulation started",
		zap.Stringer("from", s.Range.From),
		zap.Stringer("to", s.Range.To),
		zap.Int("dates", len(dates)),
		zap.Int("entities", m.Entities.Len()),
	)

	previous := s.Range.From
	if len(dates) > 0 {
		previous = dates[0]
	}
	for _, on := range dates {
		// long horizons are the only place a run can be interrupted.
		if err := ctx.Err(); err != nil {
			m.reset()
			return err
		}
		from := previous
		previous = on

		if !on.After(s.Range.To) {
			for e := range m.Entities.All() {
				e.accrueBetween(from, on)
			}
		}

		event := s.events[on]
		for _, p := range event.Pending {
			if err := m.settle(on, p); err != nil {
				m.reset()
				return err
			}
		}

		if event.Record {
			for e := range m.Entities.All() {
				e.record(on)
			}
		}
	}

	m.ran = s.Range
	m.logger.Info("simulation completed", zap.Duration("elapsed", time.Since(began)))
	return nil
}

// settle evaluates the amount of a pending transfer and moves it.
//
// A debt is never overpaid: when the destination is a debt that is not
// positive, the amount is capped to what brings it back to exactly zero.
// The cap is computed on the running balance, so that several payments on
// the same day are capped in turn.
func (m *Model) settle(on date.Date, p Pending) error {
	from, err := m.Entities.Resolve(p.From)
	if err != nil {
		return &TransferError{Date: on, Transfer: p.Transfer, Err: err}
	}
	to, err := m.Entities.Resolve(p.To)
	if err != nil {
		return &TransferError{Date: on, Transfer: p.Transfer, Err: err}
	}

	amount, err := p.Amount.Amount(m)
	if err != nil {
		return &TransferError{Date: on, Transfer: p.Transfer, Err: err}
	}

	if to != nil && to.Kind == Debt {
		outstanding := to.Outstanding()
		if !outstanding.IsPositive() && amount.GreaterThan(outstanding.Neg()) {
			m.logger.Debug("debt payment capped",
				zap.String("debt", to.ID),
				zap.String("transfer", p.Transfer),
				zap.Stringer("date", on),
				zap.Stringer("requested", amount),
				zap.Stringer("outstanding", outstanding),
			)
			amount = outstanding.Neg()
		}
	}

	m.logger.Debug("transfer settled",
		zap.String("transfer", p.Transfer),
		zap.Stringer("date", on),
		zap.Stringer("from", p.From),
		zap.Stringer("to", p.To),
		zap.Stringer("amount", amount),
	)
	if from != nil {
		from.Value = from.Value.Sub(amount)
	}
	if to != nil {
		to.Value = to.Value.Add(amount)
	}
	return nil
}
