package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Child is a value record owned by a parent entity's child map
// (party addresses, emails and references; transaction codes, charges, ...).
type Child interface {
	IsActive() bool
}

// ActiveOrDefault resolves a tri-state active flag: absent means true, an
// explicit false means false, anything else is kept as given.
func ActiveOrDefault(active *bool) bool {
	if active == nil {
		return true
	}
	return *active
}

// ChildOption overrides a default flag of a child built in code.
type ChildOption func(*flagProbe)

// WithActive sets the child's active flag explicitly.
func WithActive(active bool) ChildOption {
	return func(f *flagProbe) { f.Active = &active }
}

// WithNetAffecting sets a charge's net_affecting flag explicitly.
func WithNetAffecting(netAffecting bool) ChildOption {
	return func(f *flagProbe) { f.NetAffecting = &netAffecting }
}

func applyOptions(opts []ChildOption) flagProbe {
	var f flagProbe
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// flagProbe picks the tri-state flags out of a wire record.
type flagProbe struct {
	Active       *bool `json:"active"`
	NetAffecting *bool `json:"net_affecting"`
}

func probeFlags(b []byte) (flagProbe, error) {
	var p flagProbe
	err := json.Unmarshal(b, &p)
	return p, err
}

// Address is a postal address of a Party.
type Address struct {
	Entity
	AddressPrimary bool   `json:"address_primary"`
	LineOne        string `json:"line_one"`
	LineTwo        string `json:"line_two"`
	City           string `json:"city"`
	Region         string `json:"region"`
	PostalCode     string `json:"postal_code"`
	CountryID      string `json:"country_id"`
	Active         bool   `json:"active"`
}

// NewAddress returns a copy of a that is active unless opts say otherwise.
func NewAddress(a Address, opts ...ChildOption) *Address {
	a.Active = ActiveOrDefault(applyOptions(opts).Active)
	return &a
}

// IsActive implements Child.
func (a *Address) IsActive() bool { return a.Active }

// UnmarshalJSON decodes a wire address, defaulting active to true.
func (a *Address) UnmarshalJSON(b []byte) error {
	type address Address
	if err := json.Unmarshal(b, (*address)(a)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	a.Active = ActiveOrDefault(flags.Active)
	return nil
}

// Email is an email address of a Party.
type Email struct {
	Entity
	EmailPrimary bool   `json:"email_primary"`
	Email        string `json:"email"`
	Active       bool   `json:"active"`
}

// NewEmail returns an email for address, active unless opts say otherwise.
func NewEmail(address string, primary bool, opts ...ChildOption) *Email {
	return &Email{Email: address, EmailPrimary: primary, Active: ActiveOrDefault(applyOptions(opts).Active)}
}

// IsActive implements Child.
func (e *Email) IsActive() bool { return e.Active }

// UnmarshalJSON decodes a wire email, defaulting active to true.
func (e *Email) UnmarshalJSON(b []byte) error {
	type email Email
	if err := json.Unmarshal(b, (*email)(e)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	e.Active = ActiveOrDefault(flags.Active)
	return nil
}

// Reference is an external identifier attached to a Party or Transaction.
type Reference struct {
	Entity
	ReferenceValue string `json:"reference_value"`
	Active         bool   `json:"active"`
}

// NewReference returns a reference holding value, active unless opts say otherwise.
func NewReference(value string, opts ...ChildOption) *Reference {
	return &Reference{ReferenceValue: value, Active: ActiveOrDefault(applyOptions(opts).Active)}
}

// IsActive implements Child.
func (r *Reference) IsActive() bool { return r.Active }

// UnmarshalJSON decodes a wire reference, defaulting active to true.
func (r *Reference) UnmarshalJSON(b []byte) error {
	type reference Reference
	if err := json.Unmarshal(b, (*reference)(r)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	r.Active = ActiveOrDefault(flags.Active)
	return nil
}

// Code is a classification code attached to a Transaction.
type Code struct {
	Entity
	CodeValue string `json:"code_value"`
	Active    bool   `json:"active"`
}

// NewCode returns a code holding value, active unless opts say otherwise.
func NewCode(value string, opts ...ChildOption) *Code {
	return &Code{CodeValue: value, Active: ActiveOrDefault(applyOptions(opts).Active)}
}

// IsActive implements Child.
func (c *Code) IsActive() bool { return c.Active }

// UnmarshalJSON decodes a wire code, defaulting active to true.
func (c *Code) UnmarshalJSON(b []byte) error {
	type code Code
	if err := json.Unmarshal(b, (*code)(c)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	c.Active = ActiveOrDefault(flags.Active)
	return nil
}

// Charge is a fee or cost line of a Transaction. Only charges that are both
// active and net affecting change the net settlement.
type Charge struct {
	Entity
	ChargeValue  decimal.Decimal `json:"charge_value"`
	Currency     string          `json:"currency"`
	NetAffecting bool            `json:"net_affecting"`
	Active       bool            `json:"active"`
}

// NewCharge returns a charge that is active and net affecting unless opts say otherwise.
func NewCharge(value decimal.Decimal, currency string, opts ...ChildOption) *Charge {
	f := applyOptions(opts)
	return &Charge{
		ChargeValue:  value,
		Currency:     currency,
		NetAffecting: ActiveOrDefault(f.NetAffecting),
		Active:       ActiveOrDefault(f.Active),
	}
}

// IsActive implements Child.
func (c *Charge) IsActive() bool { return c.Active }

// UnmarshalJSON decodes a wire charge, defaulting active and net_affecting to true.
func (c *Charge) UnmarshalJSON(b []byte) error {
	type charge Charge
	if err := json.Unmarshal(b, (*charge)(c)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	c.Active = ActiveOrDefault(flags.Active)
	c.NetAffecting = ActiveOrDefault(flags.NetAffecting)
	return nil
}

// Comment is a free-text note on a Transaction.
type Comment struct {
	Entity
	CommentValue string `json:"comment_value"`
	Active       bool   `json:"active"`
}

// NewComment returns a comment holding value, active unless opts say otherwise.
func NewComment(value string, opts ...ChildOption) *Comment {
	return &Comment{CommentValue: value, Active: ActiveOrDefault(applyOptions(opts).Active)}
}

// IsActive implements Child.
func (c *Comment) IsActive() bool { return c.Active }

// UnmarshalJSON decodes a wire comment, defaulting active to true.
func (c *Comment) UnmarshalJSON(b []byte) error {
	type comment Comment
	if err := json.Unmarshal(b, (*comment)(c)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	c.Active = ActiveOrDefault(flags.Active)
	return nil
}

// Link points from a Transaction to a related transaction.
type Link struct {
	Entity
	LinkedTransactionID string `json:"linked_transaction_id"`
	Active              bool   `json:"active"`
}

// NewLink returns a link to transactionID, active unless opts say otherwise.
func NewLink(transactionID string, opts ...ChildOption) *Link {
	return &Link{LinkedTransactionID: transactionID, Active: ActiveOrDefault(applyOptions(opts).Active)}
}

// IsActive implements Child.
func (l *Link) IsActive() bool { return l.Active }

// UnmarshalJSON decodes a wire link, defaulting active to true.
func (l *Link) UnmarshalJSON(b []byte) error {
	type link Link
	if err := json.Unmarshal(b, (*link)(l)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	l.Active = ActiveOrDefault(flags.Active)
	return nil
}

// TransactionParty names the Party playing a role (the map key) in a Transaction.
type TransactionParty struct {
	Entity
	PartyID string `json:"party_id"`
	Active  bool   `json:"active"`
}

// NewTransactionParty returns a role entry for partyID, active unless opts say otherwise.
func NewTransactionParty(partyID string, opts ...ChildOption) *TransactionParty {
	return &TransactionParty{PartyID: partyID, Active: ActiveOrDefault(applyOptions(opts).Active)}
}

// IsActive implements Child.
func (p *TransactionParty) IsActive() bool { return p.Active }

// UnmarshalJSON decodes a wire transaction party, defaulting active to true.
func (p *TransactionParty) UnmarshalJSON(b []byte) error {
	type transactionParty TransactionParty
	if err := json.Unmarshal(b, (*transactionParty)(p)); err != nil {
		return err
	}
	flags, err := probeFlags(b)
	if err != nil {
		return err
	}
	p.Active = ActiveOrDefault(flags.Active)
	return nil
}
