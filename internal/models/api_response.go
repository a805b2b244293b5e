package models

// ContractDataDTO is the public representation of a contract storage entry
type ContractDataDTO struct {
	Durability string `json:"durability"`
	KeyHash    string `json:"key_hash"`
	Key        string `json:"key"`
	Value      string `json:"value"`

	// TTL is the ledger sequence at which the entry expires, null when
	// the entry has no expiry tracked
	TTL *int64 `json:"ttl"`

	// Updated is the Unix timestamp (seconds) of the producing ledger close
	Updated int64 `json:"updated"`

	// Expired is derived against the latest ledger sequence, never stored
	Expired bool `json:"expired"`
}

// Links holds the navigation links for a paginated response
type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// StorageResponse is the paginated response for a contract's storage entries
type StorageResponse struct {
	Links   Links             `json:"_links"`
	Results []ContractDataDTO `json:"results"`
}

// KeysResponse lists the distinct decoded key names for a contract
type KeysResponse struct {
	ContractID string   `json:"contract_id"`
	TotalKeys  int      `json:"total_keys"`
	Keys       []string `json:"keys"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error string `json:"error"`
}
