package service

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON key was supplied. A literal null counts as
// not supplied, so it leaves the stored value unchanged.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a supplied Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalJSON implements json.Marshaler; an unset value encodes as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// MemberUpdate names the member fields a partial update supplies.
type MemberUpdate struct {
	FirstName Optional[string] `json:"first_name" swaggertype:"string"`
	LastName  Optional[string] `json:"last_name" swaggertype:"string"`
	IsAdmin   Optional[bool]   `json:"is_admin" swaggertype:"boolean"`
}

// Columns returns the supplied fields keyed by column name.
func (u MemberUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.FirstName.Set {
		cols["first_name"] = u.FirstName.Value
	}
	if u.LastName.Set {
		cols["last_name"] = u.LastName.Value
	}
	if u.IsAdmin.Set {
		cols["is_admin"] = u.IsAdmin.Value
	}
	return cols
}

// ItemUpdate names the list item fields a partial update supplies.
type ItemUpdate struct {
	Text        Optional[string] `json:"text" swaggertype:"string"`
	IsCompleted Optional[bool]   `json:"is_completed" swaggertype:"boolean"`
	ListType    Optional[string] `json:"list_type" swaggertype:"string"`
	MemberID    Optional[uint]   `json:"member_id" swaggertype:"integer"`
}

// Columns returns the supplied fields keyed by column name.
func (u ItemUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Text.Set {
		cols["text"] = u.Text.Value
	}
	if u.IsCompleted.Set {
		cols["is_completed"] = u.IsCompleted.Value
	}
	if u.ListType.Set {
		cols["list_type"] = u.ListType.Value
	}
	if u.MemberID.Set {
		cols["member_id"] = u.MemberID.Value
	}
	return cols
}
