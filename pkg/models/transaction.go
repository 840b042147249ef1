package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amaas/amaas-core-sdk-go/internal/uuid"
)

// Transaction defaults.
const (
	TransactionTypeTrade    = "Trade"
	TransactionStatusNew    = "New"
	TransactionStatusCancel = "Cancelled"

	// SelfReferenceKey is the reference every transaction carries to its own id.
	SelfReferenceKey = "AMaaS"
)

// Transaction is a trade or other movement of an asset between books.
//
// Gross and net settlement are derived from price, quantity and charges unless
// pinned with SetGrossSettlement/SetNetSettlement.
type Transaction struct {
	Entity
	AssetManagerID      int                          `json:"asset_manager_id"`
	AssetBookID         string                       `json:"asset_book_id"`
	CounterpartyBookID  string                       `json:"counterparty_book_id"`
	TransactionAction   string                       `json:"transaction_action"`
	AssetID             string                       `json:"asset_id"`
	Quantity            decimal.Decimal              `json:"quantity"`
	TransactionDate     Date                         `json:"transaction_date"`
	SettlementDate      Date                         `json:"settlement_date"`
	Price               decimal.Decimal              `json:"price"`
	TransactionCurrency string                       `json:"transaction_currency"`
	SettlementCurrency  string                       `json:"settlement_currency"`
	TransactionType     string                       `json:"transaction_type"`
	TransactionStatus   string                       `json:"transaction_status"`
	ExecutionTime       time.Time                    `json:"execution_time"`
	TransactionID       string                       `json:"transaction_id"`
	Charges             map[string]*Charge           `json:"charges"`
	Codes               map[string]*Code             `json:"codes"`
	Comments            map[string]*Comment          `json:"comments"`
	Links               map[string]*Link             `json:"links"`
	Parties             map[string]*TransactionParty `json:"parties"`
	References          map[string]*Reference        `json:"references"`
	Postings            []json.RawMessage            `json:"postings"`
	Asset               json.RawMessage              `json:"asset,omitempty"`

	grossSettlement decimal.NullDecimal
	netSettlement   decimal.NullDecimal
}

// NewTransaction returns t with defaults applied to its empty fields: a fresh
// transaction id, the current execution time, empty child maps, no postings
// and the AMaaS self reference.
func NewTransaction(t Transaction) *Transaction {
	t.Postings = []json.RawMessage{}
	t.ApplyDefaults()
	return &t
}

// ApplyDefaults fills the empty fields of t the way NewTransaction does, but
// keeps any postings already present.
func (t *Transaction) ApplyDefaults() {
	if t.TransactionType == "" {
		t.TransactionType = TransactionTypeTrade
	}
	if t.TransactionStatus == "" {
		t.TransactionStatus = TransactionStatusNew
	}
	if t.ExecutionTime.IsZero() {
		t.ExecutionTime = time.Now().UTC()
	}
	if t.TransactionID == "" {
		t.TransactionID = uuid.New()
	}
	if t.Charges == nil {
		t.Charges = map[string]*Charge{}
	}
	if t.Codes == nil {
		t.Codes = map[string]*Code{}
	}
	if t.Comments == nil {
		t.Comments = map[string]*Comment{}
	}
	if t.Links == nil {
		t.Links = map[string]*Link{}
	}
	if t.Parties == nil {
		t.Parties = map[string]*TransactionParty{}
	}
	if t.References == nil {
		t.References = map[string]*Reference{}
	}
	if self := t.References[SelfReferenceKey]; self == nil || self.ReferenceValue != t.TransactionID {
		t.References[SelfReferenceKey] = NewReference(t.TransactionID)
	}
	if t.Postings == nil {
		t.Postings = []json.RawMessage{}
	}
}

// GrossSettlement returns the pinned gross settlement, or price × quantity.
func (t *Transaction) GrossSettlement() decimal.Decimal {
	if t.grossSettlement.Valid {
		return t.grossSettlement.Decimal
	}
	return t.Price.Mul(t.Quantity)
}

// SetGrossSettlement pins the gross settlement to d.
func (t *Transaction) SetGrossSettlement(d decimal.Decimal) {
	t.grossSettlement = decimal.NewNullDecimal(d)
}

// ClearGrossSettlement returns the gross settlement to its computed value.
func (t *Transaction) ClearGrossSettlement() {
	t.grossSettlement = decimal.NullDecimal{}
}

// GrossSettlementPinned reports whether the gross settlement is pinned.
func (t *Transaction) GrossSettlementPinned() bool { return t.grossSettlement.Valid }

// NetSettlement returns the pinned net settlement, or gross settlement minus
// the net effect of charges.
func (t *Transaction) NetSettlement() decimal.Decimal {
	if t.netSettlement.Valid {
		return t.netSettlement.Decimal
	}
	return t.GrossSettlement().Sub(t.ChargesNetEffect())
}

// SetNetSettlement pins the net settlement to d.
func (t *Transaction) SetNetSettlement(d decimal.Decimal) {
	t.netSettlement = decimal.NewNullDecimal(d)
}

// ClearNetSettlement returns the net settlement to its computed value.
func (t *Transaction) ClearNetSettlement() {
	t.netSettlement = decimal.NullDecimal{}
}

// NetSettlementPinned reports whether the net settlement is pinned.
func (t *Transaction) NetSettlementPinned() bool { return t.netSettlement.Valid }

// ChargesNetEffect sums the value of every charge that is both active and net affecting.
func (t *Transaction) ChargesNetEffect() decimal.Decimal {
	total := decimal.Zero
	for _, c := range t.Charges {
		if c != nil && c.Active && c.NetAffecting {
			total = total.Add(c.ChargeValue)
		}
	}
	return total
}

// transactionJSON is the wire shape of a Transaction, including derived settlements.
type transactionJSON struct {
	*transactionFields
	GrossSettlement decimal.NullDecimal `json:"gross_settlement"`
	NetSettlement   decimal.NullDecimal `json:"net_settlement"`
}

type transactionFields Transaction

// MarshalJSON implements json.Marshaler, adding gross_settlement and net_settlement.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		transactionFields: (*transactionFields)(&t),
		GrossSettlement:   decimal.NewNullDecimal(t.GrossSettlement()),
		NetSettlement:     decimal.NewNullDecimal(t.NetSettlement()),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Settlements present on the wire are pinned.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	aux := transactionJSON{transactionFields: (*transactionFields)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.grossSettlement = aux.GrossSettlement
	t.netSettlement = aux.NetSettlement
	return nil
}
