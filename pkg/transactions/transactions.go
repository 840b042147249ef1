// Package transactions parses AMaaS transaction records and exposes the
// transactions CRUD façade.
package transactions

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/amaas/amaas-core-sdk-go/internal/validator"
	"github.com/amaas/amaas-core-sdk-go/pkg/models"
	"github.com/amaas/amaas-core-sdk-go/pkg/network"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// ParseTransaction decodes a wire transaction record, including its child
// collections. Settlements present on the wire are kept as pinned values and
// empty fields get the usual transaction defaults. Call ClearGrossSettlement
// or ClearNetSettlement to have a parsed settlement recomputed from price,
// quantity and charges again.
func ParseTransaction(raw json.RawMessage) (*models.Transaction, error) {
	if network.IsNull(raw) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPayload, "Transaction record is empty")
	}
	var t models.Transaction
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding transaction: %w", err))
	}
	t.ApplyDefaults()
	return &t, nil
}

// ParseTransactions decodes a wire list of transaction records.
func ParseTransactions(raw json.RawMessage) ([]*models.Transaction, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("decoding transaction list: %w", err))
	}
	out := make([]*models.Transaction, 0, len(records))
	for _, record := range records {
		t, err := ParseTransaction(record)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Result is the outcome of Retrieve: One for a single transaction, Many for a list.
type Result struct {
	One  *models.Transaction
	Many []*models.Transaction
}

// Service is the transactions CRUD façade.
type Service struct {
	resource network.Resource
}

// NewService creates a transactions façade over transport. A nil logger uses the global one.
func NewService(transport network.Transport, log *zap.SugaredLogger) *Service {
	return &Service{resource: network.NewResource(network.ClassTransactions, transport, log)}
}

// Retrieve fetches transaction transactionID of asset manager amID, or all of
// its transactions when transactionID is empty.
func (s *Service) Retrieve(ctx context.Context, amID int, transactionID, token string) (Result, error) {
	raw, err := s.resource.Read(ctx, amID, transactionID, token)
	if err != nil {
		return Result{}, err
	}
	if network.IsList(raw) {
		many, err := ParseTransactions(raw)
		if err != nil {
			return Result{}, err
		}
		return Result{Many: many}, nil
	}
	one, err := ParseTransaction(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{One: one}, nil
}

// Insert books t. The response body is returned unparsed.
func (s *Service) Insert(ctx context.Context, t *models.Transaction, token string) (json.RawMessage, error) {
	if err := validateTransaction(t); err != nil {
		return nil, err
	}
	return s.resource.Create(ctx, t.AssetManagerID, t, token)
}

// Amend replaces the stored transaction with t.
func (s *Service) Amend(ctx context.Context, t *models.Transaction, amID int, transactionID, token string) (json.RawMessage, error) {
	if err := validateTransaction(t); err != nil {
		return nil, err
	}
	return s.resource.Replace(ctx, amID, transactionID, t, token)
}

// PartialAmend applies changes, keyed by snake_case wire field names, to the
// stored transaction.
func (s *Service) PartialAmend(ctx context.Context, changes map[string]any, amID int, transactionID, token string) (json.RawMessage, error) {
	return s.resource.PartialUpdate(ctx, amID, transactionID, changes, token)
}

// Deactivate cancels the transaction server-side.
func (s *Service) Deactivate(ctx context.Context, amID int, transactionID, token string) (json.RawMessage, error) {
	return s.resource.Delete(ctx, amID, transactionID, token)
}

func validateTransaction(t *models.Transaction) error {
	if t == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Transaction is required")
	}
	return validator.Fields(
		validator.Field{Name: "TransactionCurrency", Value: t.TransactionCurrency, Tag: "omitempty,iso4217"},
		validator.Field{Name: "SettlementCurrency", Value: t.SettlementCurrency, Tag: "omitempty,iso4217"},
	)
}
