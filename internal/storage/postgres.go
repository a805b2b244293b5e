package storage

import (
	"context"
	"fmt"
	"time"

	"storageapi/internal/metrics"
	"storageapi/internal/models"
	"storageapi/internal/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

// GetContractDataPage executes the keyset range query for one page of
// contract data. Rows fetched in the inverted direction for a prev cursor
// are re-reversed here so the page always matches the requested order.
func (r *PostgresRepository) GetContractDataPage(ctx context.Context, params *pagination.RequestParams) ([]models.ContractDataRow, error) {
	query, args, err := BuildStoragePageQuery(params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract data: %w", err)
	}
	defer rows.Close()

	var page []models.ContractDataRow

	for rows.Next() {
		var row models.ContractDataRow

		err := rows.Scan(
			&row.ContractID,
			&row.KeyHash,
			&row.Durability,
			&row.KeySymbol,
			&row.Key,
			&row.Val,
			&row.ClosedAt,
			&row.LiveUntilLedgerSeq,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan contract data row: %w", err)
		}

		page = append(page, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract data: %w", err)
	}

	metrics.PageQueryDuration.Observe(time.Since(start).Seconds())
	metrics.RowsReturned.Observe(float64(len(page)))

	if params.Cursor != nil && params.Cursor.CursorType == pagination.CursorPrev {
		reverseRows(page)
	}

	return page, nil
}

// ListContractKeys returns the distinct non-empty decoded key names for a
// contract
func (r *PostgresRepository) ListContractKeys(ctx context.Context, contractID string) ([]string, error) {
	query := `
		SELECT DISTINCT key_symbol
		FROM contract_data
		WHERE contract_id = $1
		  AND key_symbol IS NOT NULL
		  AND key_symbol <> ''
		ORDER BY key_symbol ASC
	`

	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contract keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan contract key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract keys: %w", err)
	}

	return keys, nil
}

// Ping checks if the database connection is alive
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func reverseRows(rows []models.ContractDataRow) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
