package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eduraksha/contracts/vc"
	dErrors "eduraksha/pkg/domain-errors"
)

// Status is the stored lifecycle state of a credential.
//
// Only active and revoked are ever persisted: expiry is derived lazily from
// ExpirationDate at read time (see EffectiveStatus), so a credential never has
// to be rewritten just because the clock moved past its expiry.
type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
	// StatusExpired is a derived state, never stored. It is reported by
	// EffectiveStatus when an active credential's ExpirationDate has passed.
	StatusExpired Status = "expired"
)

// Party identifies an issuer or subject by identifier and display name.
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Credential is a holder-owned verifiable credential record.
//
// All fields except Status are immutable once issued. Status transitions only
// through Revoke/Restore on the wallet service; expired is never written.
type Credential struct {
	ID                string            `json:"id"`
	Type              vc.CredentialType `json:"type"`
	Issuer            Party             `json:"issuer"`
	Subject           Party             `json:"subject"`
	IssuanceDate      time.Time         `json:"issuanceDate"`
	ExpirationDate    *time.Time        `json:"expirationDate,omitempty"`
	CredentialSubject map[string]any    `json:"credentialSubject"`
	Proof             string            `json:"proof"`
	Status            Status            `json:"status"`
	SelfIssued        bool              `json:"selfIssued"`
}

// NewID returns a fresh credential identifier in urn:uuid form.
func NewID() string {
	return "urn:uuid:" + uuid.New().String()
}

// Validate enforces the construction invariants shared by creation and import.
func (c *Credential) Validate() error {
	if c.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "credential id required")
	}
	if c.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "credential type required")
	}
	if c.Issuer.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "issuer identifier required")
	}
	if c.Subject.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "subject identifier required")
	}
	if len(c.CredentialSubject) == 0 {
		return dErrors.New(dErrors.CodeValidation, "credentialSubject must not be empty")
	}
	if c.Proof == "" {
		return dErrors.New(dErrors.CodeValidation, "proof required")
	}
	if c.Status != StatusActive && c.Status != StatusRevoked {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid status: %s", c.Status))
	}
	if c.ExpirationDate != nil && c.ExpirationDate.Before(c.IssuanceDate) {
		return dErrors.New(dErrors.CodeValidation, "expiration must be after issuance")
	}
	return nil
}

// EffectiveStatus reports the lifecycle state at the provided time.
// Revocation wins over expiry; an active credential past its ExpirationDate
// reports expired without any stored mutation.
func (c Credential) EffectiveStatus(now time.Time) Status {
	if c.Status == StatusRevoked {
		return StatusRevoked
	}
	if c.ExpirationDate != nil && c.ExpirationDate.Before(now) {
		return StatusExpired
	}
	return StatusActive
}

// IsActive returns true when the credential is neither revoked nor expired.
func (c Credential) IsActive(now time.Time) bool {
	return c.EffectiveStatus(now) == StatusActive
}

// ExpiresWithin returns true for active credentials whose ExpirationDate falls
// inside (now, now+window].
func (c Credential) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpirationDate == nil || !c.IsActive(now) {
		return false
	}
	return !c.ExpirationDate.After(now.Add(window))
}

// ClaimSet projects the credential into the cross-module claims contract.
func (c Credential) ClaimSet() vc.ClaimSet {
	claims := make(map[string]any, len(c.CredentialSubject))
	for k, v := range c.CredentialSubject {
		claims[k] = v
	}
	return vc.ClaimSet{Type: c.Type, Claims: claims}
}

// Clone returns a deep-enough copy for handing records across the store
// boundary: the claim map is copied, scalar fields are value-copied.
func (c Credential) Clone() *Credential {
	copied := c
	copied.CredentialSubject = make(map[string]any, len(c.CredentialSubject))
	for k, v := range c.CredentialSubject {
		copied.CredentialSubject[k] = v
	}
	if c.ExpirationDate != nil {
		t := *c.ExpirationDate
		copied.ExpirationDate = &t
	}
	return &copied
}

// CanonicalPayload serializes the unsigned fields of a credential into the
// deterministic byte form handed to the signer collaborator. encoding/json
// sorts map keys, so equal credentials always canonicalize identically.
func (c Credential) CanonicalPayload() ([]byte, error) {
	payload := map[string]any{
		"id":                c.ID,
		"type":              c.Type,
		"issuer":            map[string]string{"id": c.Issuer.ID, "name": c.Issuer.Name},
		"subject":           map[string]string{"id": c.Subject.ID, "name": c.Subject.Name},
		"issuanceDate":      c.IssuanceDate.UTC().Format(time.RFC3339),
		"credentialSubject": c.CredentialSubject,
	}
	if c.ExpirationDate != nil {
		payload["expirationDate"] = c.ExpirationDate.UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("canonicalize credential %s: %w", c.ID, err)
	}
	return data, nil
}
