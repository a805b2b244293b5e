package pagination

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"storageapi/internal/models"
)

func ttlRow(keyHash string, ttl *int64) models.ContractDataRow {
	return models.ContractDataRow{
		ContractID:         testContract,
		KeyHash:            keyHash,
		Durability:         "persistent",
		ClosedAt:           time.Unix(1700000000, 0).UTC(),
		LiveUntilLedgerSeq: ttl,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func cursorFromLink(t *testing.T, link string) *Cursor {
	t.Helper()

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("Failed to parse link %s: %v", link, err)
	}
	token := parsed.Query().Get("cursor")
	if token == "" {
		t.Fatalf("Link %s has no cursor", link)
	}

	cursor, err := Decode(token)
	if err != nil {
		t.Fatalf("Failed to decode cursor from %s: %v", link, err)
	}
	return cursor
}

func TestBuildLinksSelfReflectsRequest(t *testing.T) {
	params := &RequestParams{
		ContractID: testContract,
		Limit:      2,
		Order:      OrderAsc,
		SortBy:     SortTTL,
		Column:     "live_until_ledger_sequence",
	}

	links := BuildLinks(params, nil)

	if !strings.HasPrefix(links.Self, "/contract/"+testContract+"/storage?") {
		t.Errorf("Unexpected self link: %s", links.Self)
	}
	if !strings.Contains(links.Self, "order=asc") || !strings.Contains(links.Self, "limit=2") {
		t.Errorf("Self link missing request params: %s", links.Self)
	}
	if !strings.Contains(links.Self, "sort_by=ttl") {
		t.Errorf("Self link missing non-default sort_by: %s", links.Self)
	}
}

func TestBuildLinksSelfOmitsDefaultSortBy(t *testing.T) {
	params := &RequestParams{
		ContractID: testContract,
		Limit:      50,
		Order:      OrderDesc,
		SortBy:     SortKeyHash,
		Column:     "key_hash",
	}

	links := BuildLinks(params, nil)
	if strings.Contains(links.Self, "sort_by") {
		t.Errorf("Self link should omit default sort_by: %s", links.Self)
	}
}

func TestBuildLinksNextOnFullPage(t *testing.T) {
	params := &RequestParams{
		ContractID:   testContract,
		Limit:        2,
		Order:        OrderAsc,
		SortBy:       SortTTL,
		Column:       "live_until_ledger_sequence",
		NullableSort: true,
	}

	rows := []models.ContractDataRow{
		ttlRow("cc01", int64Ptr(901)),
		ttlRow("dd02", int64Ptr(902)),
	}

	links := BuildLinks(params, rows)
	if links.Next == "" {
		t.Fatal("Expected next link on a full page")
	}
	if links.Prev != "" {
		t.Errorf("Expected no prev link without a request cursor, got: %s", links.Prev)
	}

	cursor := cursorFromLink(t, links.Next)
	if cursor.CursorType != CursorNext {
		t.Errorf("Expected next cursor type, got: %s", cursor.CursorType)
	}
	if cursor.SortField != SortTTL {
		t.Errorf("Expected sort field ttl, got: %s", cursor.SortField)
	}
	if cursor.Position.KeyHash != "dd02" {
		t.Errorf("Expected cursor from last row dd02, got: %s", cursor.Position.KeyHash)
	}
	if cursor.Position.SortValue == nil || cursor.Position.SortValue.Num != 902 {
		t.Errorf("Expected sort value 902, got: %+v", cursor.Position.SortValue)
	}
}

func TestBuildLinksNoNextOnPartialPage(t *testing.T) {
	params := &RequestParams{
		ContractID: testContract,
		Limit:      2,
		Order:      OrderAsc,
		SortBy:     SortKeyHash,
		Column:     "key_hash",
	}

	links := BuildLinks(params, []models.ContractDataRow{ttlRow("aa01", nil)})
	if links.Next != "" {
		t.Errorf("Expected no next link on a partial page, got: %s", links.Next)
	}
}

func TestBuildLinksPrevRequiresCursorAndRows(t *testing.T) {
	cursor := &Cursor{CursorType: CursorNext, Position: Position{KeyHash: "cc01"}}
	params := &RequestParams{
		ContractID: testContract,
		Limit:      2,
		Order:      OrderAsc,
		SortBy:     SortKeyHash,
		Column:     "key_hash",
		Cursor:     cursor,
		RawCursor:  Encode(*cursor),
	}

	// Empty page behind a cursor: no prev
	links := BuildLinks(params, nil)
	if links.Prev != "" {
		t.Errorf("Expected no prev link for an empty page, got: %s", links.Prev)
	}

	// Non-empty page behind a cursor: prev from the first row
	rows := []models.ContractDataRow{ttlRow("dd02", nil), ttlRow("ee03", nil)}
	links = BuildLinks(params, rows)
	if links.Prev == "" {
		t.Fatal("Expected prev link")
	}

	prev := cursorFromLink(t, links.Prev)
	if prev.CursorType != CursorPrev {
		t.Errorf("Expected prev cursor type, got: %s", prev.CursorType)
	}
	if prev.Position.KeyHash != "dd02" {
		t.Errorf("Expected cursor from first row dd02, got: %s", prev.Position.KeyHash)
	}
}

func TestBuildLinksNullTTLBoundary(t *testing.T) {
	params := &RequestParams{
		ContractID:   testContract,
		Limit:        1,
		Order:        OrderAsc,
		SortBy:       SortTTL,
		Column:       "live_until_ledger_sequence",
		NullableSort: true,
	}

	links := BuildLinks(params, []models.ContractDataRow{ttlRow("aa04", nil)})
	cursor := cursorFromLink(t, links.Next)

	if cursor.Position.SortValue == nil || cursor.Position.SortValue.Kind != ValueNull {
		t.Errorf("Expected explicit null sort value for null TTL boundary, got: %+v", cursor.Position.SortValue)
	}
}

func TestBuildLinksUpdatedAtUsesUnixSeconds(t *testing.T) {
	params := &RequestParams{
		ContractID: testContract,
		Limit:      1,
		Order:      OrderDesc,
		SortBy:     SortUpdatedAt,
		Column:     "closed_at",
	}

	row := ttlRow("cc01", nil)
	links := BuildLinks(params, []models.ContractDataRow{row})
	cursor := cursorFromLink(t, links.Next)

	if cursor.Position.SortValue == nil || cursor.Position.SortValue.Num != row.ClosedAt.Unix() {
		t.Errorf("Expected Unix seconds %d, got: %+v", row.ClosedAt.Unix(), cursor.Position.SortValue)
	}
}
