package storage

import (
	"context"

	"storageapi/internal/models"
	"storageapi/internal/pagination"
)

// Repository defines the read operations over the contract_data table
type Repository interface {
	// GetContractDataPage returns one page of contract data rows for a
	// validated request, already in the client's requested order
	GetContractDataPage(ctx context.Context, params *pagination.RequestParams) ([]models.ContractDataRow, error)

	// ListContractKeys returns the distinct non-empty decoded key names
	// for a contract, in ascending order
	ListContractKeys(ctx context.Context, contractID string) ([]string, error)

	// Health & Maintenance
	Ping(ctx context.Context) error
	Close() error
}
