// Package positions parses AMaaS position records and exposes the positions
// retrieve and search façade.
package positions

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/amaas/amaas-core-sdk-go/pkg/models"
	"github.com/amaas/amaas-core-sdk-go/pkg/network"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// ParsePosition decodes a wire position record.
func ParsePosition(raw json.RawMessage) (*models.Position, error) {
	if network.IsNull(raw) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPayload, "Position record is empty")
	}
	var p models.Position
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding position: %w", err))
	}
	return &p, nil
}

// ParsePositions decodes a wire list of position records.
func ParsePositions(raw json.RawMessage) ([]*models.Position, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding position list: %w", err))
	}
	out := make([]*models.Position, 0, len(records))
	for _, record := range records {
		p, err := ParsePosition(record)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Result is the outcome of Retrieve. Books usually hold several positions, so
// the API may answer a single-resource read with a list.
type Result struct {
	One  *models.Position
	Many []*models.Position
}

// Service is the positions façade.
type Service struct {
	resource network.Resource
}

// NewService creates a positions façade over transport. A nil logger uses the global one.
func NewService(transport network.Transport, log *zap.SugaredLogger) *Service {
	return &Service{resource: network.NewResource(network.ClassPositions, transport, log)}
}

// Retrieve fetches the positions of asset manager amID, narrowed to one book
// when bookID is set.
func (s *Service) Retrieve(ctx context.Context, amID int, bookID, token string) (Result, error) {
	raw, err := s.resource.Read(ctx, amID, bookID, token)
	if err != nil {
		return Result{}, err
	}
	if network.IsList(raw) {
		many, err := ParsePositions(raw)
		if err != nil {
			return Result{}, err
		}
		return Result{Many: many}, nil
	}
	one, err := ParsePosition(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{One: one}, nil
}

// Search returns every position whose queryKey field equals queryValue,
// e.g. Search(ctx, "asset_id", "AAPL", token).
func (s *Service) Search(ctx context.Context, queryKey, queryValue, token string) ([]*models.Position, error) {
	raw, err := s.resource.Query(ctx, queryKey, queryValue, token)
	if err != nil {
		return nil, err
	}
	return ParsePositions(raw)
}
