// Package network defines how the SDK talks to the AMaaS API: the request
// parameters every façade builds, the Transport contract, and an HTTP
// implementation of it.
package network

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/amaas/amaas-core-sdk-go/internal/validator"
)

// Resource classes addressable through a Transport.
const (
	ClassParties      = "parties"
	ClassPositions    = "positions"
	ClassTransactions = "transactions"
)

// Op names a transport operation. It selects which Params fields are required.
type Op string

// Transport operations.
const (
	OpRead          Op = "read"
	OpCreate        Op = "create"
	OpReplace       Op = "replace"
	OpPartialUpdate Op = "partial_update"
	OpDelete        Op = "delete"
	OpQuery         Op = "query"
)

// Params is the request every façade operation hands to a Transport.
type Params struct {
	Class      string `validate:"required,amaas_class"`
	AMID       int    `validate:"gte=0"`
	ResourceID string
	Token      string
	Data       json.RawMessage
	QueryKey   string
	QueryValue string
}

// Validate checks that p carries what op needs. Failures are ErrInvalidInput.
func (p Params) Validate(op Op) error {
	if err := validator.Struct(p); err != nil {
		return err
	}

	if op == OpQuery {
		return validator.Fields(
			validator.Field{Name: "QueryKey", Value: p.QueryKey, Tag: "required"},
			validator.Field{Name: "QueryValue", Value: p.QueryValue, Tag: "required"},
		)
	}

	fields := []validator.Field{{Name: "AMID", Value: p.AMID, Tag: "gt=0"}}
	switch op {
	case OpReplace, OpPartialUpdate, OpDelete:
		fields = append(fields, validator.Field{Name: "ResourceID", Value: p.ResourceID, Tag: "required"})
	}
	switch op {
	case OpCreate, OpReplace, OpPartialUpdate:
		fields = append(fields, validator.Field{Name: "Data", Value: []byte(p.Data), Tag: "required"})
	}
	return validator.Fields(fields...)
}

// Transport executes AMaaS requests. Each call returns the raw response body or
// an error, never both. Implementations must be safe for concurrent use.
type Transport interface {
	Read(ctx context.Context, p Params) (json.RawMessage, error)
	Create(ctx context.Context, p Params) (json.RawMessage, error)
	Replace(ctx context.Context, p Params) (json.RawMessage, error)
	PartialUpdate(ctx context.Context, p Params) (json.RawMessage, error)
	Delete(ctx context.Context, p Params) (json.RawMessage, error)
	Query(ctx context.Context, p Params) (json.RawMessage, error)
}

// IsNull reports whether raw holds no record: empty, whitespace or JSON null.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// IsList reports whether raw is a JSON array, as returned when a read names no
// single resource.
func IsList(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
