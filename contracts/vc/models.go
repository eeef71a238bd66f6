// Package vc hosts the stable, minimal DTOs shared across modules for
// verifiable credential claims. Keep these PII-light and versioned
// independently from the wallet's internal persistence models.
package vc

// ContractVersion identifies the contract schema version for compatibility checks.
// Bump on breaking changes to the shapes below; consumers can pin or roll forward.
const ContractVersion = "v0.1.0"

// CredentialType identifies the kind of credential.
type CredentialType string

const (
	CredentialTypeIncome     CredentialType = "IncomeCertificate"
	CredentialTypeCaste      CredentialType = "CasteCertificate"
	CredentialTypeAcademic   CredentialType = "AcademicCertificate"
	CredentialTypeDisability CredentialType = "DisabilityCertificate"
	CredentialTypeDomicile   CredentialType = "DomicileCertificate"
)

// ClaimSet is the minimal contract for credential claim lookups.
// Used by the eligibility module to read claims from active credentials
// without exposing the full wallet record.
type ClaimSet struct {
	Type   CredentialType
	Claims map[string]interface{}
}
