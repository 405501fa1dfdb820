package forecast

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Entities is an ordered collection of entities keyed by id.
//
// Iteration follows insertion order.
type Entities struct {
	order []*Entity
	byID  map[string]*Entity
}

// Add inserts e and returns its id. An empty id is replaced by a random UUID.
func (s *Entities) Add(e *Entity) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if s.byID == nil {
		s.byID = make(map[string]*Entity)
	}
	if _, exists := s.byID[e.ID]; exists {
		return "", fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateID)
	}
	s.order = append(s.order, e)
	s.byID[e.ID] = e
	return e.ID, nil
}

// Get returns the entity 'id' or nil.
func (s *Entities) Get(id string) *Entity { return s.byID[id] }

// Resolve returns the entity referenced by r, nil for External.
func (s *Entities) Resolve(r Ref) (*Entity, error) {
	if r.IsExternal() {
		return nil, nil
	}
	e := s.byID[r.ID()]
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, r.ID())
	}
	return e, nil
}

// Len returns the number of entities.
func (s *Entities) Len() int { return len(s.order) }

// All iterates over the entities in insertion order.
func (s *Entities) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.order {
			if !yield(e) {
				return
			}
		}
	}
}

// Transfers is an ordered collection of transfer definitions keyed by id.
//
// Insertion order is the order in which transfers settling on the same day
// are applied.
type Transfers struct {
	order []Transfer
	index map[string]int
}

// NewTransferID returns a new identifier. Identifiers sort in creation order.
func NewTransferID() string { return ulid.Make().String() }

// Add inserts t and returns its id. An empty id is replaced by NewTransferID.
func (s *Transfers) Add(t Transfer) (string, error) {
	from, to := t.Parties()
	if from.IsExternal() && to.IsExternal() {
		return "", ErrBothExternal
	}
	if t.TransferID() == "" {
		t = t.withID(NewTransferID())
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	id := t.TransferID()
	if _, exists := s.index[id]; exists {
		return "", fmt.Errorf("transfer %q: %w", id, ErrDuplicateID)
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, t)
	return id, nil
}

// Get returns the transfer 'id' and true, or nil and false.
func (s *Transfers) Get(id string) (Transfer, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.order[i], true
}

// Len returns the number of transfers.
func (s *Transfers) Len() int { return len(s.order) }

// All iterates over the transfers in insertion order.
func (s *Transfers) All() iter.Seq[Transfer] {
	return func(yield func(Transfer) bool) {
		for _, t := range s.order {
			if !yield(t) {
				return
			}
		}
	}
}
