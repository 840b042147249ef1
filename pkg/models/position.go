package models

import "github.com/shopspring/decimal"

// Position is the holding of an asset in a book over a validity window.
type Position struct {
	Entity
	AssetManagerID int             `json:"asset_manager_id"`
	AssetBookID    string          `json:"asset_book_id"`
	AssetID        string          `json:"asset_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ValidFrom      Date            `json:"valid_from"`
	ValidTo        Date            `json:"valid_to"`
	InternalID     string          `json:"internal_id"`
	ClientID       string          `json:"client_id"`
	AccountingType string          `json:"accounting_type"`
	AccountID      string          `json:"account_id"`
}
