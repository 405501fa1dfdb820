package forecast

import (
	"encoding/json"
	"strings"
)

// externalName is the name of the External counterparty in files.
const externalName = "external"

// Ref is the counterparty of a transfer: either an entity, or External for
// any source or sink outside the model (salary, expenses, interests paid by
// a bank...).
//
// The zero value is External.
type Ref struct {
	id string
}

// External is the counterparty outside the model.
var External = Ref{}

// EntityRef returns a reference to the entity 'id'.
func EntityRef(id string) Ref { return Ref{id: id} }

// IsExternal reports whether r is External.
func (r Ref) IsExternal() bool { return r.id == "" }

// ID returns the referenced entity id, empty for External.
func (r Ref) ID() string { return r.id }

func (r Ref) String() string {
	if r.IsExternal() {
		return externalName
	}
	return r.id
}

func (r Ref) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" || strings.EqualFold(s, externalName) {
		*r = External
		return nil
	}
	*r = EntityRef(s)
	return nil
}
