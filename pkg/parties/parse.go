// Package parties parses AMaaS party records into their concrete variants and
// exposes the parties CRUD façade.
package parties

import (
	"encoding/json"
	"fmt"

	"github.com/amaas/amaas-core-sdk-go/pkg/models"
	"github.com/amaas/amaas-core-sdk-go/pkg/network"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// ChildKind selects the child type ParseChildren decodes.
type ChildKind string

// Child kinds held by a party.
const (
	ChildAddress   ChildKind = "address"
	ChildEmail     ChildKind = "email"
	ChildReference ChildKind = "reference"
)

var childFactories = map[ChildKind]func() models.Child{
	ChildAddress:   func() models.Child { return &models.Address{} },
	ChildEmail:     func() models.Child { return &models.Email{} },
	ChildReference: func() models.Child { return &models.Reference{} },
}

// ParseChildren decodes a wire child collection of the given kind. Keys are
// kept as given. A nil collection yields an empty map. A kind other than
// address, email or reference is a programming error and returns
// ErrUnknownChildKind.
func ParseChildren(kind ChildKind, raw map[string]json.RawMessage) (map[string]models.Child, error) {
	factory, ok := childFactories[kind]
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrUnknownChildKind, fmt.Sprintf("Child type not defined: %q", kind))
	}

	children := make(map[string]models.Child, len(raw))
	for key, value := range raw {
		child := factory()
		if err := json.Unmarshal(value, child); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding %s %q: %w", kind, key, err))
		}
		children[key] = child
	}
	return children, nil
}

// ParseAddresses decodes a wire addresses collection.
func ParseAddresses(raw map[string]json.RawMessage) (map[string]*models.Address, error) {
	return parseTyped[*models.Address](ChildAddress, raw)
}

// ParseEmails decodes a wire emails collection.
func ParseEmails(raw map[string]json.RawMessage) (map[string]*models.Email, error) {
	return parseTyped[*models.Email](ChildEmail, raw)
}

// ParseReferences decodes a wire references collection.
func ParseReferences(raw map[string]json.RawMessage) (map[string]*models.Reference, error) {
	return parseTyped[*models.Reference](ChildReference, raw)
}

func parseTyped[T models.Child](kind ChildKind, raw map[string]json.RawMessage) (map[string]T, error) {
	children, err := ParseChildren(kind, raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(children))
	for key, child := range children {
		out[key] = child.(T)
	}
	return out, nil
}

// partyWire is the snake_case party record with its child collections left raw.
type partyWire struct {
	models.Entity
	AssetManagerID int                        `json:"asset_manager_id"`
	PartyID        string                     `json:"party_id"`
	PartyStatus    string                     `json:"party_status"`
	PartyClass     string                     `json:"party_class"`
	PartyType      string                     `json:"party_type"`
	Description    string                     `json:"description"`
	Addresses      map[string]json.RawMessage `json:"addresses"`
	Emails         map[string]json.RawMessage `json:"emails"`
	References     map[string]json.RawMessage `json:"references"`
}

type partyConstructor func(models.Party) models.PartyVariant

var partyConstructors = map[string]partyConstructor{
	models.PartyTypeIndividual:       func(p models.Party) models.PartyVariant { return models.NewIndividual(p) },
	models.PartyTypeBroker:           func(p models.Party) models.PartyVariant { return models.NewBroker(p) },
	models.PartyTypeExchange:         func(p models.Party) models.PartyVariant { return models.NewExchange(p) },
	models.PartyTypeFund:             func(p models.Party) models.PartyVariant { return models.NewFund(p) },
	models.PartyTypeGovernmentAgency: func(p models.Party) models.PartyVariant { return models.NewGovernmentAgency(p) },
	models.PartyTypeOrganisation:     func(p models.Party) models.PartyVariant { return models.NewOrganisation(p) },
	models.PartyTypeCompany:          func(p models.Party) models.PartyVariant { return models.NewCompany(p) },
}

// resolvePartyConstructor maps a party_type to its constructor. Matching is
// exact; anything unrecognised, including "", builds a base Party.
func resolvePartyConstructor(partyType string) partyConstructor {
	if c, ok := partyConstructors[partyType]; ok {
		return c
	}
	return func(p models.Party) models.PartyVariant { return models.NewParty(p) }
}

// ParseParty decodes a wire party record into the variant named by its
// party_type. Unknown or missing types yield a base *models.Party; only
// malformed JSON is an error.
func ParseParty(raw json.RawMessage) (models.PartyVariant, error) {
	if network.IsNull(raw) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPayload, "Party record is empty")
	}
	var w partyWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding party: %w", err))
	}

	addresses, err := ParseAddresses(w.Addresses)
	if err != nil {
		return nil, err
	}
	emails, err := ParseEmails(w.Emails)
	if err != nil {
		return nil, err
	}
	references, err := ParseReferences(w.References)
	if err != nil {
		return nil, err
	}

	return resolvePartyConstructor(w.PartyType)(models.Party{
		Entity:         w.Entity,
		AssetManagerID: w.AssetManagerID,
		PartyID:        w.PartyID,
		PartyStatus:    w.PartyStatus,
		PartyClass:     w.PartyClass,
		PartyType:      w.PartyType,
		Description:    w.Description,
		Addresses:      addresses,
		Emails:         emails,
		References:     references,
	}), nil
}

// ParseParties decodes a wire list of party records.
func ParseParties(raw json.RawMessage) ([]models.PartyVariant, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding party list: %w", err))
	}
	parties := make([]models.PartyVariant, 0, len(records))
	for _, record := range records {
		p, err := ParseParty(record)
		if err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, nil
}
