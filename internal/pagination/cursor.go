package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"storageapi/internal/apierror"
)

// Cursor types carried inside the token
const (
	CursorNext = "next"
	CursorPrev = "prev"
)

// API sort fields accepted by the storage endpoint
const (
	SortDurability = "durability"
	SortKeyHash    = "key_hash"
	SortTTL        = "ttl"
	SortUpdatedAt  = "updated_at"
)

// ValueKind discriminates the JSON type of a cursor sort value
type ValueKind int

const (
	ValueNumber ValueKind = iota + 1
	ValueString
	ValueNull
)

// SortValue is the tagged union carried in a cursor position. The JSON
// type must match the sort field: number for ttl/updated_at, string for
// durability, null only for the nullable ttl column.
type SortValue struct {
	Kind ValueKind
	Num  int64
	Str  string
}

// NumberValue builds a numeric sort value
func NumberValue(n int64) *SortValue {
	return &SortValue{Kind: ValueNumber, Num: n}
}

// StringValue builds a string sort value
func StringValue(s string) *SortValue {
	return &SortValue{Kind: ValueString, Str: s}
}

// NullValue builds an explicit null sort value
func NullValue() *SortValue {
	return &SortValue{Kind: ValueNull}
}

func (v *SortValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return []byte(strconv.FormatInt(v.Num, 10)), nil
	case ValueString:
		return json.Marshal(v.Str)
	case ValueNull:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unknown sort value kind: %d", v.Kind)
	}
}

func (v *SortValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.Kind = ValueNull
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &v.Str); err != nil {
			return err
		}
		v.Kind = ValueString
		return nil
	}
	num, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("sort value must be an integer, a string or null: %s", data)
	}
	v.Kind = ValueNumber
	v.Num = num
	return nil
}

// Position is the boundary-row position carried in a cursor
type Position struct {
	KeyHash   string     `json:"keyHash"`
	SortValue *SortValue `json:"sortValue,omitempty"`
}

// UnmarshalJSON keeps an explicit "sortValue": null distinct from an absent
// one. encoding/json sets a pointer field to nil on JSON null without
// calling the value's unmarshaler, which would erase the null-group
// position a ttl cursor carries.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw struct {
		KeyHash   string          `json:"keyHash"`
		SortValue json.RawMessage `json:"sortValue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.KeyHash = raw.KeyHash
	p.SortValue = nil
	if raw.SortValue == nil {
		return nil
	}

	var v SortValue
	if err := json.Unmarshal(raw.SortValue, &v); err != nil {
		return err
	}
	p.SortValue = &v
	return nil
}

// Cursor is the decoded form of an opaque pagination token
type Cursor struct {
	CursorType string   `json:"cursorType"`
	SortField  string   `json:"sortField,omitempty"`
	Position   Position `json:"position"`
}

// EffectiveSortField resolves the cursor's sort field, defaulting to
// key_hash when absent
func (c *Cursor) EffectiveSortField() string {
	if c.SortField == "" {
		return SortKeyHash
	}
	return c.SortField
}

// Encode serializes the cursor to its opaque base64 token form. The cursor
// type is normalized to "next" unless it is explicitly "prev".
func Encode(c Cursor) string {
	if c.CursorType != CursorPrev {
		c.CursorType = CursorNext
	}
	data, err := json.Marshal(c)
	if err != nil {
		// Only reachable with a SortValue of unknown kind, which the
		// link builder never constructs
		panic(fmt.Sprintf("cursor not encodable: %v", err))
	}
	return base64.StdEncoding.EncodeToString(data)
}

// Decode parses and validates an opaque cursor token. Any decoding failure
// yields an InvalidCursor error naming the literal token; a successfully
// parsed cursor is further checked for shape and field/value-type
// consistency so the query builder never sees a semantically wrong
// comparison.
func Decode(raw string) (*Cursor, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, apierror.InvalidCursor("Invalid cursor: %s", raw)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apierror.InvalidCursor("Invalid cursor: %s", raw)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Cursor) validate() error {
	if c.CursorType != CursorNext && c.CursorType != CursorPrev {
		return apierror.InvalidCursor("Invalid cursor: unknown cursor type %q", c.CursorType)
	}

	if c.Position.KeyHash == "" {
		return apierror.InvalidCursor("Invalid cursor: missing key hash")
	}

	field := c.EffectiveSortField()
	switch field {
	case SortKeyHash:
		// The key hash is the position, no sort value needed
		return nil
	case SortDurability:
		return c.requireValue(field, ValueString, "a string")
	case SortTTL:
		if c.Position.SortValue != nil && c.Position.SortValue.Kind == ValueNull {
			// Null boundary inside the null TTL group
			return nil
		}
		return c.requireValue(field, ValueNumber, "a number")
	case SortUpdatedAt:
		return c.requireValue(field, ValueNumber, "a number")
	default:
		return apierror.InvalidCursor("Invalid cursor: unknown sort field %q", c.SortField)
	}
}

func (c *Cursor) requireValue(field string, kind ValueKind, want string) error {
	if c.Position.SortValue == nil {
		return apierror.InvalidCursor("Invalid cursor: sort field %q requires a sort value", field)
	}
	if c.Position.SortValue.Kind != kind {
		return apierror.InvalidCursor("Invalid cursor: sort value for field %q must be %s", field, want)
	}
	return nil
}
