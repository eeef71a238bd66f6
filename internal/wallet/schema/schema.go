// Package schema validates credential documents and per-type claim bags
// against JSON schemas, so malformed claims are rejected at construction and
// import time rather than surfacing at display time.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"eduraksha/contracts/vc"
	dErrors "eduraksha/pkg/domain-errors"
)

// documentSchema covers the envelope fields every imported credential must
// carry. Claim contents are checked separately per credential type.
const documentSchema = `{
	"type": "object",
	"required": ["id", "type", "issuer", "subject", "issuanceDate", "credentialSubject", "proof"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"type": {"type": "string", "minLength": 1},
		"issuer": {
			"type": "object",
			"required": ["id"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"name": {"type": "string"}
			}
		},
		"subject": {
			"type": "object",
			"required": ["id"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"name": {"type": "string"}
			}
		},
		"issuanceDate": {"type": "string"},
		"expirationDate": {"type": "string"},
		"credentialSubject": {"type": "object", "minProperties": 1},
		"proof": {"type": "string", "minLength": 1},
		"status": {"type": "string", "enum": ["active", "revoked"]},
		"selfIssued": {"type": "boolean"}
	}
}`

// claimSchemas holds the typed claim contract per known credential type.
// Unknown types fall back to genericClaimSchema: any non-empty object.
var claimSchemas = map[vc.CredentialType]string{
	vc.CredentialTypeIncome: `{
		"type": "object",
		"required": ["annualIncome"],
		"properties": {
			"annualIncome": {"type": "number", "minimum": 0},
			"currency": {"type": "string"},
			"financialYear": {"type": "string"}
		}
	}`,
	vc.CredentialTypeCaste: `{
		"type": "object",
		"required": ["caste"],
		"properties": {
			"caste": {"type": "string", "minLength": 1},
			"certificateNumber": {"type": "string"}
		}
	}`,
	vc.CredentialTypeAcademic: `{
		"type": "object",
		"required": ["marksPercentage"],
		"properties": {
			"marksPercentage": {"type": "number", "minimum": 0, "maximum": 100},
			"course": {"type": "string"},
			"institution": {"type": "string"},
			"year": {"type": "integer"}
		}
	}`,
	vc.CredentialTypeDisability: `{
		"type": "object",
		"required": ["disability"],
		"properties": {
			"disability": {"type": "boolean"},
			"disabilityPercentage": {"type": "number", "minimum": 0, "maximum": 100}
		}
	}`,
	vc.CredentialTypeDomicile: `{
		"type": "object",
		"required": ["region"],
		"properties": {
			"region": {"type": "string", "enum": ["rural", "urban"]},
			"state": {"type": "string"},
			"district": {"type": "string"}
		}
	}`,
}

const genericClaimSchema = `{"type": "object", "minProperties": 1}`

// ValidateDocument checks a raw imported credential document against the
// envelope schema. Returns CodeValidation with the first failure rendered.
func ValidateDocument(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "credential document is not valid JSON")
	}
	if !result.Valid() {
		return dErrors.New(dErrors.CodeValidation, "invalid credential document: "+renderErrors(result))
	}
	return nil
}

// ValidateClaims checks a claim bag against the schema registered for the
// credential type. Types without a registered schema only need a non-empty bag.
func ValidateClaims(credType vc.CredentialType, claims map[string]any) error {
	s, ok := claimSchemas[credType]
	if !ok {
		s = genericClaimSchema
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(s),
		gojsonschema.NewGoLoader(claims),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "claims are not a valid JSON object")
	}
	if !result.Valid() {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("invalid claims for %s: %s", credType, renderErrors(result)))
	}
	return nil
}

// KnownType reports whether a typed claim schema is registered for credType.
func KnownType(credType vc.CredentialType) bool {
	_, ok := claimSchemas[credType]
	return ok
}

func renderErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
