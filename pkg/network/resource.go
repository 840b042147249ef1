package network

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/amaas/amaas-core-sdk-go/internal/logger"
	"github.com/amaas/amaas-core-sdk-go/internal/validator"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// Resource issues validated requests for a single resource class. The
// per-resource façades build on it and add parsing.
type Resource struct {
	class     string
	transport Transport
	log       *zap.SugaredLogger
}

// NewResource returns a Resource for class. A nil logger uses the global one.
func NewResource(class string, transport Transport, log *zap.SugaredLogger) Resource {
	return Resource{class: class, transport: transport, log: logger.Or(log).With("class", class)}
}

// Read fetches one resource, or every resource of amID when resourceID is empty.
func (r Resource) Read(ctx context.Context, amID int, resourceID, token string) (json.RawMessage, error) {
	p := Params{Class: r.class, AMID: amID, ResourceID: resourceID, Token: token}
	return r.send(ctx, OpRead, p, r.transport.Read)
}

// Create sends the wire projection of entity as a new resource under amID.
func (r Resource) Create(ctx context.Context, amID int, entity any, token string) (json.RawMessage, error) {
	data, err := marshal(entity)
	if err != nil {
		return nil, err
	}
	p := Params{Class: r.class, AMID: amID, Token: token, Data: data}
	return r.send(ctx, OpCreate, p, r.transport.Create)
}

// Replace overwrites the resource with the wire projection of entity.
func (r Resource) Replace(ctx context.Context, amID int, resourceID string, entity any, token string) (json.RawMessage, error) {
	data, err := marshal(entity)
	if err != nil {
		return nil, err
	}
	p := Params{Class: r.class, AMID: amID, ResourceID: resourceID, Token: token, Data: data}
	return r.send(ctx, OpReplace, p, r.transport.Replace)
}

// PartialUpdate sends changes, keyed by snake_case wire field names, as a patch.
func (r Resource) PartialUpdate(ctx context.Context, amID int, resourceID string, changes map[string]any, token string) (json.RawMessage, error) {
	if err := validator.Fields(validator.Field{Name: "Changes", Value: changes, Tag: "required,min=1"}); err != nil {
		return nil, err
	}
	data, err := marshal(changes)
	if err != nil {
		return nil, err
	}
	p := Params{Class: r.class, AMID: amID, ResourceID: resourceID, Token: token, Data: data}
	return r.send(ctx, OpPartialUpdate, p, r.transport.PartialUpdate)
}

// Delete deactivates the resource.
func (r Resource) Delete(ctx context.Context, amID int, resourceID, token string) (json.RawMessage, error) {
	p := Params{Class: r.class, AMID: amID, ResourceID: resourceID, Token: token}
	return r.send(ctx, OpDelete, p, r.transport.Delete)
}

// Query searches resources whose queryKey field equals queryValue.
func (r Resource) Query(ctx context.Context, queryKey, queryValue, token string) (json.RawMessage, error) {
	p := Params{Class: r.class, Token: token, QueryKey: queryKey, QueryValue: queryValue}
	return r.send(ctx, OpQuery, p, r.transport.Query)
}

func (r Resource) send(ctx context.Context, op Op, p Params, call func(context.Context, Params) (json.RawMessage, error)) (json.RawMessage, error) {
	if err := p.Validate(op); err != nil {
		return nil, err
	}
	raw, err := call(ctx, p)
	if err != nil {
		r.log.Debugw("amaas request failed",
			"op", op,
			"asset_manager_id", p.AMID,
			"resource_id", p.ResourceID,
			"error", err,
		)
		return nil, err
	}
	return raw, nil
}

func marshal(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPayload, fmt.Errorf("encoding request: %w", err))
	}
	return data, nil
}
