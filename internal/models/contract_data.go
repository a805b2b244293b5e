package models

import "time"

// ContractDataRow represents one row of the contract_data table: the most
// recent snapshot of a single storage key for a contract.
type ContractDataRow struct {
	// Identification
	ContractID string `json:"contract_id"`
	KeyHash    string `json:"key_hash"` // Hex digest, unique within a contract
	Durability string `json:"durability"`

	// Decoded key name, when the key is a symbol
	KeySymbol *string `json:"key_symbol,omitempty"`

	// Raw XDR payloads (not serialized)
	Key []byte `json:"-"`
	Val []byte `json:"-"`

	// Ledger close that produced this snapshot
	ClosedAt time.Time `json:"closed_at"`

	// Ledger sequence at which the entry's lease expires, nil when the
	// entry has no TTL
	LiveUntilLedgerSeq *int64 `json:"live_until_ledger_sequence,omitempty"`
}
