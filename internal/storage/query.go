package storage

import (
	"fmt"
	"time"

	"storageapi/internal/apierror"
	"storageapi/internal/pagination"
)

const contractDataColumns = `contract_id, key_hash, durability, key_symbol, key, val, closed_at, live_until_ledger_sequence`

// BuildStoragePageQuery constructs the single parameterized range query for
// one page of contract data. Correctness spans four axes: sort field, sort
// direction, forward/backward cursor, and null handling on the ttl column.
// Every user-controlled value is a bound parameter; the column name comes
// from the closed lookup resolved during validation.
func BuildStoragePageQuery(p *pagination.RequestParams) (string, []interface{}, error) {
	if p.Column == "" {
		return "", nil, apierror.Internal(fmt.Errorf("unresolved sort column for sort_by=%s", p.SortBy))
	}

	ascending := p.EffectiveOrder() == pagination.OrderAsc
	op := "<"
	if ascending {
		op = ">"
	}

	args := []interface{}{p.ContractID}
	predicate := ""

	if p.Cursor != nil {
		pred, cursorArgs, err := keysetPredicate(p, op, ascending, len(args))
		if err != nil {
			return "", nil, err
		}
		predicate = "\n\t\t  AND " + pred
		args = append(args, cursorArgs...)
	}

	orderBy := orderByClause(p, ascending)
	args = append(args, p.Limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM contract_data
		WHERE contract_id = $1%s
		ORDER BY %s
		LIMIT $%d`,
		contractDataColumns, predicate, orderBy, len(args))

	return query, args, nil
}

// keysetPredicate builds the composite comparison that resumes the scan
// strictly after the cursor position in the effective direction. base is
// the number of parameters already bound.
func keysetPredicate(p *pagination.RequestParams, op string, ascending bool, base int) (string, []interface{}, error) {
	keyHash := p.Cursor.Position.KeyHash

	// Sorting by key_hash alone degenerates to a single comparison
	if p.SortBy == pagination.SortKeyHash {
		return fmt.Sprintf("key_hash %s $%d", op, base+1), []interface{}{keyHash}, nil
	}

	value := p.Cursor.Position.SortValue
	if value == nil {
		return "", nil, apierror.Internal(fmt.Errorf("cursor for sort_by=%s has no sort value", p.SortBy))
	}

	// Null boundary: the client is positioned inside the null group, which
	// sits after all non-null values when ascending and before them when
	// descending.
	if p.NullableSort && value.Kind == pagination.ValueNull {
		if ascending {
			pred := fmt.Sprintf("%s IS NULL AND key_hash %s $%d", p.Column, op, base+1)
			return pred, []interface{}{keyHash}, nil
		}
		pred := fmt.Sprintf("(%s IS NOT NULL OR (%s IS NULL AND key_hash %s $%d))",
			p.Column, p.Column, op, base+1)
		return pred, []interface{}{keyHash}, nil
	}

	arg, err := cursorValueArg(p, value)
	if err != nil {
		return "", nil, err
	}

	pred := fmt.Sprintf("(%s %s $%d OR (%s = $%d AND key_hash %s $%d))",
		p.Column, op, base+1, p.Column, base+1, op, base+2)

	// Walking ascending from a non-null boundary, the null group lies on
	// the far side of every non-null value and must be swept in too.
	if p.NullableSort && ascending {
		pred = fmt.Sprintf("(%s OR %s IS NULL)", pred, p.Column)
	}

	return pred, []interface{}{arg, keyHash}, nil
}

// cursorValueArg converts the cursor's sort value into the bound parameter
// the column expects. Timestamps travel as Unix seconds inside cursors.
func cursorValueArg(p *pagination.RequestParams, value *pagination.SortValue) (interface{}, error) {
	switch p.SortBy {
	case pagination.SortDurability:
		return value.Str, nil
	case pagination.SortTTL:
		return value.Num, nil
	case pagination.SortUpdatedAt:
		return time.Unix(value.Num, 0).UTC(), nil
	default:
		return nil, apierror.Internal(fmt.Errorf("no cursor value conversion for sort_by=%s", p.SortBy))
	}
}

// orderByClause renders the total order (sort column, key_hash) in the
// effective direction. Null placement is pinned explicitly: ascending puts
// nulls last, descending puts them first.
func orderByClause(p *pagination.RequestParams, ascending bool) string {
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}

	if p.SortBy == pagination.SortKeyHash {
		return fmt.Sprintf("key_hash %s", dir)
	}

	if p.NullableSort {
		nulls := "NULLS FIRST"
		if ascending {
			nulls = "NULLS LAST"
		}
		return fmt.Sprintf("%s %s %s, key_hash %s", p.Column, dir, nulls, dir)
	}

	return fmt.Sprintf("%s %s, key_hash %s", p.Column, dir, dir)
}
