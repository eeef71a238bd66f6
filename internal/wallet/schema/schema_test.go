package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduraksha/contracts/vc"
	dErrors "eduraksha/pkg/domain-errors"
)

func TestValidateClaims(t *testing.T) {
	cases := []struct {
		name     string
		credType vc.CredentialType
		claims   map[string]any
		wantErr  bool
	}{
		{"income valid", vc.CredentialTypeIncome, map[string]any{"annualIncome": 90000.0}, false},
		{"income missing amount", vc.CredentialTypeIncome, map[string]any{"currency": "INR"}, true},
		{"income negative", vc.CredentialTypeIncome, map[string]any{"annualIncome": -5.0}, true},
		{"income wrong type", vc.CredentialTypeIncome, map[string]any{"annualIncome": "lots"}, true},
		{"caste valid", vc.CredentialTypeCaste, map[string]any{"caste": "SC"}, false},
		{"caste empty", vc.CredentialTypeCaste, map[string]any{"caste": ""}, true},
		{"academic valid", vc.CredentialTypeAcademic, map[string]any{"marksPercentage": 85.0}, false},
		{"academic over 100", vc.CredentialTypeAcademic, map[string]any{"marksPercentage": 120.0}, true},
		{"disability valid", vc.CredentialTypeDisability, map[string]any{"disability": true}, false},
		{"disability wrong type", vc.CredentialTypeDisability, map[string]any{"disability": "yes"}, true},
		{"domicile valid", vc.CredentialTypeDomicile, map[string]any{"region": "rural"}, false},
		{"domicile bad region", vc.CredentialTypeDomicile, map[string]any{"region": "coastal"}, true},
		{"unknown type any object", vc.CredentialType("LibraryCard"), map[string]any{"cardNumber": "L-42"}, false},
		{"unknown type empty object", vc.CredentialType("LibraryCard"), map[string]any{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateClaims(tc.credType, tc.claims)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := `{
		"id": "urn:uuid:123",
		"type": "IncomeCertificate",
		"issuer": {"id": "did:gov:revenue-dept", "name": "Revenue Department"},
		"subject": {"id": "did:student:anita", "name": "Anita"},
		"issuanceDate": "2026-01-10T00:00:00Z",
		"credentialSubject": {"annualIncome": 90000},
		"proof": "proof-blob",
		"status": "active"
	}`

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, ValidateDocument([]byte(valid)))
	})

	t.Run("not json", func(t *testing.T) {
		err := ValidateDocument([]byte("not json at all"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("missing proof", func(t *testing.T) {
		doc := `{
			"id": "urn:uuid:123",
			"type": "IncomeCertificate",
			"issuer": {"id": "did:gov:revenue-dept"},
			"subject": {"id": "did:student:anita"},
			"issuanceDate": "2026-01-10T00:00:00Z",
			"credentialSubject": {"annualIncome": 90000}
		}`
		err := ValidateDocument([]byte(doc))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("expired status rejected", func(t *testing.T) {
		doc := `{
			"id": "urn:uuid:123",
			"type": "IncomeCertificate",
			"issuer": {"id": "did:gov:revenue-dept"},
			"subject": {"id": "did:student:anita"},
			"issuanceDate": "2026-01-10T00:00:00Z",
			"credentialSubject": {"annualIncome": 90000},
			"proof": "proof-blob",
			"status": "expired"
		}`
		assert.Error(t, ValidateDocument([]byte(doc)))
	})

	t.Run("empty claim bag rejected", func(t *testing.T) {
		doc := `{
			"id": "urn:uuid:123",
			"type": "IncomeCertificate",
			"issuer": {"id": "did:gov:revenue-dept"},
			"subject": {"id": "did:student:anita"},
			"issuanceDate": "2026-01-10T00:00:00Z",
			"credentialSubject": {},
			"proof": "proof-blob"
		}`
		assert.Error(t, ValidateDocument([]byte(doc)))
	})
}

func TestKnownType(t *testing.T) {
	assert.True(t, KnownType(vc.CredentialTypeIncome))
	assert.True(t, KnownType(vc.CredentialTypeDomicile))
	assert.False(t, KnownType(vc.CredentialType("LibraryCard")))
}
