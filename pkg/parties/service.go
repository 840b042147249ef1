package parties

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/amaas/amaas-core-sdk-go/pkg/models"
	"github.com/amaas/amaas-core-sdk-go/pkg/network"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// Result is the outcome of Retrieve. A read naming a single party fills One;
// a read of every party of an asset manager fills Many.
type Result struct {
	One  models.PartyVariant
	Many []models.PartyVariant
}

// Service is the parties CRUD façade. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	resource network.Resource
}

// NewService creates a parties façade over transport. A nil logger uses the global one.
func NewService(transport network.Transport, log *zap.SugaredLogger) *Service {
	return &Service{resource: network.NewResource(network.ClassParties, transport, log)}
}

// Retrieve fetches the party partyID of asset manager amID, or all of its
// parties when partyID is empty. Transport errors are returned as-is and
// nothing is parsed.
func (s *Service) Retrieve(ctx context.Context, amID int, partyID, token string) (Result, error) {
	raw, err := s.resource.Read(ctx, amID, partyID, token)
	if err != nil {
		return Result{}, err
	}
	if network.IsList(raw) {
		many, err := ParseParties(raw)
		if err != nil {
			return Result{}, err
		}
		return Result{Many: many}, nil
	}
	one, err := ParseParty(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{One: one}, nil
}

// Insert creates party. The response body is returned unparsed.
func (s *Service) Insert(ctx context.Context, party models.PartyVariant, token string) (json.RawMessage, error) {
	if party == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Party is required")
	}
	return s.resource.Create(ctx, party.Base().AssetManagerID, party, token)
}

// Amend replaces the stored party with party. This is a full overwrite.
func (s *Service) Amend(ctx context.Context, party models.PartyVariant, amID int, partyID, token string) (json.RawMessage, error) {
	if party == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Party is required")
	}
	return s.resource.Replace(ctx, amID, partyID, party, token)
}

// PartialAmend applies changes to the stored party. Keys must be snake_case
// wire field names, e.g. party_status.
func (s *Service) PartialAmend(ctx context.Context, changes map[string]any, amID int, partyID, token string) (json.RawMessage, error) {
	return s.resource.PartialUpdate(ctx, amID, partyID, changes, token)
}

// Deactivate marks the party Inactive server-side.
func (s *Service) Deactivate(ctx context.Context, amID int, partyID, token string) (json.RawMessage, error) {
	return s.resource.Delete(ctx, amID, partyID, token)
}
