package models

// Party statuses.
const (
	PartyStatusActive   = "Active"
	PartyStatusInactive = "Inactive"
)

// Party types. The party type is the discriminator selecting the concrete variant.
const (
	PartyTypeParty            = "Party"
	PartyTypeIndividual       = "Individual"
	PartyTypeOrganisation     = "Organisation"
	PartyTypeGovernmentAgency = "GovernmentAgency"
	PartyTypeCompany          = "Company"
	PartyTypeBroker           = "Broker"
	PartyTypeExchange         = "Exchange"
	PartyTypeFund             = "Fund"
)

// Party is a counterparty in the AMaaS system. The variants below embed it and
// differ only in their default class and type.
type Party struct {
	Entity
	AssetManagerID int                   `json:"asset_manager_id"`
	PartyID        string                `json:"party_id"`
	PartyStatus    string                `json:"party_status"`
	PartyClass     string                `json:"party_class"`
	PartyType      string                `json:"party_type"`
	Description    string                `json:"description"`
	Addresses      map[string]*Address   `json:"addresses"`
	Emails         map[string]*Email     `json:"emails"`
	References     map[string]*Reference `json:"references"`
}

// PartyVariant is implemented by *Party and every concrete party variant.
type PartyVariant interface {
	// Base returns the shared party fields.
	Base() *Party
	isPartyVariant()
}

// Base implements PartyVariant.
func (p *Party) Base() *Party { return p }

func (p *Party) isPartyVariant() {}

// Individual is a natural person.
type Individual struct{ Party }

// Organisation is any non-person party.
type Organisation struct{ Party }

// GovernmentAgency is a public-sector organisation.
type GovernmentAgency struct{ Organisation }

// Company is a commercial organisation.
type Company struct{ Organisation }

// Broker is a company acting as broker.
type Broker struct{ Company }

// Exchange is a company operating a trading venue.
type Exchange struct{ Company }

// Fund is a company representing an investment fund.
type Fund struct{ Company }

// withDefaults returns p with empty fields replaced by the defaults for the
// given class and type.
func (p Party) withDefaults(partyClass, partyType string) Party {
	if p.PartyStatus == "" {
		p.PartyStatus = PartyStatusActive
	}
	if p.PartyClass == "" {
		p.PartyClass = partyClass
	}
	if p.PartyType == "" {
		p.PartyType = partyType
	}
	if p.Addresses == nil {
		p.Addresses = map[string]*Address{}
	}
	if p.Emails == nil {
		p.Emails = map[string]*Email{}
	}
	if p.References == nil {
		p.References = map[string]*Reference{}
	}
	return p
}

// NewParty returns a base Party with defaults applied to its empty fields.
func NewParty(p Party) *Party {
	base := p.withDefaults(PartyTypeParty, PartyTypeParty)
	return &base
}

// NewIndividual returns an Individual with defaults applied.
func NewIndividual(p Party) *Individual {
	return &Individual{Party: p.withDefaults(PartyTypeIndividual, PartyTypeIndividual)}
}

// NewOrganisation returns an Organisation with defaults applied.
func NewOrganisation(p Party) *Organisation {
	return &Organisation{Party: p.withDefaults(PartyTypeOrganisation, PartyTypeOrganisation)}
}

// NewGovernmentAgency returns a GovernmentAgency with defaults applied.
func NewGovernmentAgency(p Party) *GovernmentAgency {
	return &GovernmentAgency{Organisation{Party: p.withDefaults(PartyTypeOrganisation, PartyTypeGovernmentAgency)}}
}

// NewCompany returns a Company with defaults applied.
func NewCompany(p Party) *Company {
	return &Company{Organisation{Party: p.withDefaults(PartyTypeCompany, PartyTypeCompany)}}
}

// NewBroker returns a Broker with defaults applied.
func NewBroker(p Party) *Broker {
	return &Broker{Company{Organisation{Party: p.withDefaults(PartyTypeCompany, PartyTypeBroker)}}}
}

// NewExchange returns an Exchange with defaults applied.
func NewExchange(p Party) *Exchange {
	return &Exchange{Company{Organisation{Party: p.withDefaults(PartyTypeCompany, PartyTypeExchange)}}}
}

// NewFund returns a Fund with defaults applied.
func NewFund(p Party) *Fund {
	return &Fund{Company{Organisation{Party: p.withDefaults(PartyTypeCompany, PartyTypeFund)}}}
}
