package api

import (
	"encoding/base64"
	"unicode"
	"unicode/utf8"

	"storageapi/internal/models"
)

// decodeText decodes a raw binary payload to text on a best-effort basis:
// printable UTF-8 passes through unchanged, anything else is base64 encoded
func decodeText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	if utf8.Valid(raw) && isPrintable(string(raw)) {
		return string(raw)
	}

	return base64.StdEncoding.EncodeToString(raw)
}

func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// BuildContractDataDTO maps a storage row to its public representation.
// expired is derived against the latest ledger sequence; entries with no
// TTL never expire.
func BuildContractDataDTO(row models.ContractDataRow, latestLedgerSeq uint32) models.ContractDataDTO {
	expired := false
	if row.LiveUntilLedgerSeq != nil && *row.LiveUntilLedgerSeq < int64(latestLedgerSeq) {
		expired = true
	}

	return models.ContractDataDTO{
		Durability: row.Durability,
		KeyHash:    row.KeyHash,
		Key:        decodeText(row.Key),
		Value:      decodeText(row.Val),
		TTL:        row.LiveUntilLedgerSeq,
		Updated:    row.ClosedAt.Unix(),
		Expired:    expired,
	}
}

// BuildContractDataDTOs maps a full page of rows, always returning a
// non-nil slice so empty pages serialize as [] rather than null
func BuildContractDataDTOs(rows []models.ContractDataRow, latestLedgerSeq uint32) []models.ContractDataDTO {
	dtos := make([]models.ContractDataDTO, len(rows))
	for i, row := range rows {
		dtos[i] = BuildContractDataDTO(row, latestLedgerSeq)
	}
	return dtos
}
