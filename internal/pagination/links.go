package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"storageapi/internal/models"
)

// BuildLinks derives the self/next/prev navigation links for a fetched
// page. next is emitted whenever a full page came back, which may lead the
// client to one final empty page when the data set size is an exact
// multiple of the limit. prev is emitted only when this request itself was
// cursor-driven, since only then is a page known to exist behind it.
func BuildLinks(params *RequestParams, rows []models.ContractDataRow) models.Links {
	links := models.Links{
		Self: renderLink(params, params.RawCursor),
	}

	if len(rows) >= params.Limit {
		last := rows[len(rows)-1]
		links.Next = renderLink(params, Encode(boundaryCursor(params, last, CursorNext)))
	}

	if params.Cursor != nil && len(rows) > 0 {
		first := rows[0]
		links.Prev = renderLink(params, Encode(boundaryCursor(params, first, CursorPrev)))
	}

	return links
}

// boundaryCursor captures a row's position under the request's sort field
func boundaryCursor(params *RequestParams, row models.ContractDataRow, cursorType string) Cursor {
	c := Cursor{
		CursorType: cursorType,
		Position:   Position{KeyHash: row.KeyHash},
	}

	switch params.SortBy {
	case SortKeyHash:
		// key_hash alone positions the row
	case SortDurability:
		c.SortField = SortDurability
		c.Position.SortValue = StringValue(row.Durability)
	case SortTTL:
		c.SortField = SortTTL
		if row.LiveUntilLedgerSeq == nil {
			c.Position.SortValue = NullValue()
		} else {
			c.Position.SortValue = NumberValue(*row.LiveUntilLedgerSeq)
		}
	case SortUpdatedAt:
		c.SortField = SortUpdatedAt
		c.Position.SortValue = NumberValue(row.ClosedAt.Unix())
	}

	return c
}

func renderLink(params *RequestParams, cursor string) string {
	values := url.Values{}
	values.Set("order", params.Order)
	values.Set("limit", strconv.Itoa(params.Limit))
	if params.SortBy != SortKeyHash {
		values.Set("sort_by", params.SortBy)
	}
	if cursor != "" {
		values.Set("cursor", cursor)
	}

	return fmt.Sprintf("/contract/%s/storage?%s", url.PathEscape(params.ContractID), values.Encode())
}
