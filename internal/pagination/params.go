package pagination

import (
	"net/url"
	"strconv"

	"storageapi/internal/apierror"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Limit bounds for a single page
const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 200
)

// sortColumn maps an API sort field to its storage column
type sortColumn struct {
	column   string
	nullable bool
}

// Closed set of sortable fields. Every ordering is made total by the
// (sort column, key_hash) pair, so each entry here assumes the key_hash
// tie-break.
var sortColumns = map[string]sortColumn{
	SortDurability: {column: "durability"},
	SortKeyHash:    {column: "key_hash"},
	SortTTL:        {column: "live_until_ledger_sequence", nullable: true},
	SortUpdatedAt:  {column: "closed_at"},
}

// RequestParams is a fully validated, normalized page request. The query
// builder is never invoked with anything else.
type RequestParams struct {
	ContractID string
	Limit      int
	Order      string
	SortBy     string

	// Resolved storage column for SortBy
	Column       string
	NullableSort bool

	// Decoded cursor and the literal token it came from, when supplied
	Cursor    *Cursor
	RawCursor string
}

// EffectiveOrder is the direction rows must be fetched in: the requested
// order, inverted for a prev cursor so LIMIT takes the closest rows on the
// other side of the position. Pages fetched inverted are re-reversed before
// being returned.
func (p *RequestParams) EffectiveOrder() string {
	if p.Cursor != nil && p.Cursor.CursorType == CursorPrev {
		if p.Order == OrderAsc {
			return OrderDesc
		}
		return OrderAsc
	}
	return p.Order
}

// ParseRequest validates the query parameters of a storage page request
// and resolves them into RequestParams. Cursor/sort cross-consistency is
// enforced here: a token minted under one sort_by cannot resume a
// traversal under another.
func ParseRequest(contractID string, query url.Values) (*RequestParams, error) {
	if contractID == "" {
		return nil, apierror.InvalidParameter("Invalid contract_id, must not be empty")
	}

	limit := DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < MinLimit || parsed > MaxLimit {
			return nil, apierror.InvalidParameter(
				"Invalid limit=%s, must be an integer between %d and %d", raw, MinLimit, MaxLimit)
		}
		limit = parsed
	}

	order := OrderDesc
	if raw := query.Get("order"); raw != "" {
		if raw != OrderAsc && raw != OrderDesc {
			return nil, apierror.InvalidParameter(
				"Invalid order=%s, must be one of: %s, %s", raw, OrderAsc, OrderDesc)
		}
		order = raw
	}

	sortBy := SortKeyHash
	if raw := query.Get("sort_by"); raw != "" {
		if _, ok := sortColumns[raw]; !ok {
			return nil, apierror.InvalidParameter(
				"Invalid sort_by=%s, must be one of: %s, %s, %s, %s",
				raw, SortDurability, SortKeyHash, SortTTL, SortUpdatedAt)
		}
		sortBy = raw
	}
	col := sortColumns[sortBy]

	params := &RequestParams{
		ContractID:   contractID,
		Limit:        limit,
		Order:        order,
		SortBy:       sortBy,
		Column:       col.column,
		NullableSort: col.nullable,
	}

	if raw := query.Get("cursor"); raw != "" {
		cursor, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		if field := cursor.EffectiveSortField(); field != sortBy {
			return nil, apierror.CursorMismatch(
				"Cursor sort field %s does not match requested sort_by=%s", field, sortBy)
		}
		params.Cursor = cursor
		params.RawCursor = raw
	}

	return params, nil
}
