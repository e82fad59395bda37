package submission

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Path and method of the send operation in the contract.
const (
	SendPath   = "/api/send"
	SendMethod = http.MethodPost
)

//go:embed contract.yaml
var defaultContract []byte

// DefaultContract returns the embedded OpenAPI document.
func DefaultContract() []byte {
	out := make([]byte, len(defaultContract))
	copy(out, defaultContract)
	return out
}

// Contract holds the request schema of the send operation.
type Contract struct {
	doc    *openapi3.T
	schema *openapi3.Schema
}

// LoadContract parses raw, validates the document and resolves the JSON
// request schema of POST /api/send.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("submission: load contract: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("submission: validate contract: %w", err)
	}

	if doc.Paths == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrOperationNotFound, SendMethod, SendPath)
	}
	item := doc.Paths.Find(SendPath)
	if item == nil || item.GetOperation(SendMethod) == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrOperationNotFound, SendMethod, SendPath)
	}
	body := item.GetOperation(SendMethod).RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("%w: %s %s has no request body", ErrOperationNotFound, SendMethod, SendPath)
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("%w: %s %s has no JSON schema", ErrOperationNotFound, SendMethod, SendPath)
	}
	return &Contract{doc: doc, schema: media.Schema.Value}, nil
}

// Check validates payload against the request schema. Every schema error is
// reported, wrapped in ErrContractViolation.
func (c *Contract) Check(payload map[string]any) error {
	if err := c.schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	return nil
}

// Title returns the document title.
func (c *Contract) Title() string {
	if c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}
