package forecast

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

// A scenario file is a JSON document describing a model: its parameters,
// its entities and its transfers. Amounts are plain JSON numbers, parsed
// as exact decimals. Counterparties are entity ids or "external".

// number returns d as a raw JSON number, so that files keep exact decimals.
func number(d decimal.Decimal) json.RawMessage { return json.RawMessage(d.String()) }

// jentity is an entity definition as it is read from a file.
type jentity struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         Kind            `json:"kind"`
	Start        date.Date       `json:"start"`
	InitialValue decimal.Decimal `json:"initialValue"`
	Rate         decimal.Decimal `json:"rate"`
	Source       Ref             `json:"source"`
	Deposit      *Frequency      `json:"deposit"`
}

// jtransfer is a transfer definition as it is read from a file.
// A transfer with a "date" is one-time, otherwise it is recurring.
type jtransfer struct {
	ID        string          `json:"id"`
	From      Ref             `json:"from"`
	To        Ref             `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Date      date.Date       `json:"date"`
	Start     date.Date       `json:"start"`
	End       date.Date       `json:"end"`
	Frequency *Frequency      `json:"frequency"`
}

// jscenario is the document read from a scenario file.
type jscenario struct {
	Start     date.Date   `json:"start"`
	End       date.Date   `json:"end"`
	Record    *Frequency  `json:"record"`
	Currency  string      `json:"currency"`
	Entities  []jentity   `json:"entities"`
	Transfers []jtransfer `json:"transfers"`
}

// DecodeScenario reads a model from a scenario file.
func DecodeScenario(r io.Reader, opts ...Option) (*Model, error) {
	var js jscenario
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&js); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	m := NewModel(opts...)
	m.Params.Start, m.Params.End = js.Start, js.End
	if js.Currency != "" {
		m.Params.Currency = js.Currency
	}
	if js.Record != nil {
		if err := m.SetRecordFrequency(*js.Record); err != nil {
			return nil, err
		}
	}

	for i, je := range js.Entities {
		e := &Entity{
			ID:           je.ID,
			Name:         je.Name,
			Kind:         je.Kind,
			Start:        je.Start,
			InitialValue: je.InitialValue,
			Rate:         je.Rate,
			Source:       je.Source,
		}
		if je.Deposit != nil {
			e.Deposit = *je.Deposit
		}
		if e.Kind != Chequing && e.Start.IsZero() {
			return nil, fmt.Errorf("entity #%d %q: missing start date", i, e.ID)
		}
		if _, err := m.AddEntity(e); err != nil {
			return nil, fmt.Errorf("entity #%d: %w", i, err)
		}
	}
	// sources are resolved once every entity is known, they may be declared in any order.
	for e := range m.Entities.All() {
		if _, err := m.Entities.Resolve(e.Source); err != nil {
			return nil, fmt.Errorf("entity %q source: %w", e.ID, err)
		}
	}

	for i, jt := range js.Transfers {
		var t Transfer
		switch {
		case !jt.Date.IsZero():
			ot := NewOneTime(jt.From, jt.To, jt.Amount, jt.Date)
			ot.ID = jt.ID
			t = ot
		case !jt.Start.IsZero() && jt.Frequency != nil:
			rt := NewRecurring(jt.From, jt.To, jt.Amount, jt.Start, jt.End, *jt.Frequency)
			rt.ID = jt.ID
			t = rt
		default:
			return nil, fmt.Errorf("transfer #%d: want either a date, or a start and a frequency", i)
		}
		if _, err := m.AddTransfer(t); err != nil {
			return nil, fmt.Errorf("transfer #%d: %w", i, err)
		}
	}
	return m, nil
}

// EncodeScenario writes the model definition as an indented scenario file.
//
// Only transfers with a Fixed amount can be written.
func EncodeScenario(w io.Writer, m *Model) error {
	var doc jsonObjectWriter
	doc.Optional("start", m.Params.Start)
	doc.Optional("end", m.Params.End)
	doc.Append("record", m.Params.Record)
	doc.Append("currency", m.Params.Currency)

	entities := make([]json.RawMessage, 0, m.Entities.Len())
	for e := range m.Entities.All() {
		b, err := e.MarshalJSON()
		if err != nil {
			return err
		}
		entities = append(entities, b)
	}
	doc.Append("entities", entities)

	transfers := make([]json.RawMessage, 0, m.Transfers.Len())
	for t := range m.Transfers.All() {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("transfer %q: %w", t.TransferID(), err)
		}
		transfers = append(transfers, b)
	}
	doc.Append("transfers", transfers)

	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	out, err := indent(raw)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func indent(raw []byte) (json.RawMessage, error) {
	var v json.RawMessage = raw
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// MarshalJSON writes the entity definition. The simulation state is not written.
func (e *Entity) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Optional("name", e.Name)
	w.Append("kind", e.Kind)
	if e.Kind != Chequing {
		w.Append("start", e.Start)
	}
	w.Append("initialValue", number(e.InitialValue))
	if !e.Rate.IsZero() {
		w.Append("rate", number(e.Rate))
	}
	if !e.Source.IsExternal() {
		w.Append("source", e.Source)
	}
	if e.Kind.Buffered() {
		w.Append("deposit", e.Deposit)
	}
	return w.MarshalJSON()
}

// errNotFixed is returned when writing a transfer whose amount is computed.
var errNotFixed = errors.New("only fixed amounts can be written")

// MarshalJSON implements the json.Marshaler interface for base.
func (t base) MarshalJSON() ([]byte, error) {
	fixed, ok := t.Amount.(Fixed)
	if !ok {
		return nil, errNotFixed
	}
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("from", t.From)
	w.Append("to", t.To)
	w.Append("amount", number(decimal.Decimal(fixed)))
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for OneTime.
func (t OneTime) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.base)
	w.Append("date", t.Date)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Recurring.
func (t Recurring) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.base)
	w.Append("start", t.Start)
	w.Optional("end", t.End)
	w.Append("frequency", t.Frequency)
	return w.MarshalJSON()
}

// EncodeHistory writes every recorded snapshot of the report as JSONL, one
// snapshot per line, ordered by date then by entity.
func EncodeHistory(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	for i, on := range r.Dates {
		for _, e := range r.Entities {
			if i >= len(e.Snapshots) || e.Snapshots[i].Date != on {
				continue
			}
			s := e.Snapshots[i]
			var line jsonObjectWriter
			line.Append("date", s.Date)
			line.Append("entity", e.ID)
			line.Append("value", number(s.Value.Round(precision)))
			line.Append("periodAccruals", number(s.PeriodAccruals.Round(precision)))
			line.Append("yearAccruals", number(s.YearAccruals.Round(precision)))
			b, err := line.MarshalJSON()
			if err != nil {
				return err
			}
			bw.Write(b)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// MarshalJSON writes the report as a single document, entities with their snapshots.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", r.Currency)
	w.Optional("from", r.Range.From)
	w.Optional("to", r.Range.To)
	w.Append("record", r.Record)

	entities := make([]json.RawMessage, 0, len(r.Entities))
	for _, e := range r.Entities {
		snapshots := make([]json.RawMessage, 0, len(e.Snapshots))
		for _, s := range e.Snapshots {
			var js jsonObjectWriter
			js.Append("date", s.Date)
			js.Append("value", number(s.Value.Round(precision)))
			js.Append("periodAccruals", number(s.PeriodAccruals.Round(precision)))
			js.Append("yearAccruals", number(s.YearAccruals.Round(precision)))
			b, err := js.MarshalJSON()
			if err != nil {
				return nil, err
			}
			snapshots = append(snapshots, b)
		}
		var je jsonObjectWriter
		je.Append("id", e.ID)
		je.Optional("name", e.Name)
		je.Append("kind", e.Kind)
		je.Append("snapshots", snapshots)
		b, err := je.MarshalJSON()
		if err != nil {
			return nil, err
		}
		entities = append(entities, b)
	}
	w.Append("entities", entities)
	return w.MarshalJSON()
}
