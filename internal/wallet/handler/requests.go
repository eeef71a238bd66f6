package handler

import (
	"strings"
	"time"

	"eduraksha/contracts/vc"
	"eduraksha/internal/wallet/models"
	"eduraksha/internal/wallet/service"
	dErrors "eduraksha/pkg/domain-errors"
	"eduraksha/pkg/validation"
)

// HTTP Request DTOs - contain JSON tags for API serialization.
// These are converted to service inputs before processing.

type PartyRequest struct {
	ID   string `json:"id" validate:"required,notblank"`
	Name string `json:"name"`
}

type AddCredentialRequest struct {
	Type           string         `json:"type" validate:"required,notblank"`
	Issuer         PartyRequest   `json:"issuer"`
	Subject        PartyRequest   `json:"subject"`
	Claims         map[string]any `json:"claims" validate:"required,min=1"`
	ExpirationDate *time.Time     `json:"expirationDate,omitempty"`
}

func (r *AddCredentialRequest) Normalize() {
	if r == nil {
		return
	}
	r.Type = strings.TrimSpace(r.Type)
	r.Issuer.ID = strings.TrimSpace(r.Issuer.ID)
	r.Issuer.Name = strings.TrimSpace(r.Issuer.Name)
	r.Subject.ID = strings.TrimSpace(r.Subject.ID)
	r.Subject.Name = strings.TrimSpace(r.Subject.Name)
}

func (r *AddCredentialRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

// ToInput converts the HTTP request to a service input.
func (r *AddCredentialRequest) ToInput() service.AddInput {
	return service.AddInput{
		Type:           vc.CredentialType(r.Type),
		Issuer:         models.Party{ID: r.Issuer.ID, Name: r.Issuer.Name},
		Subject:        models.Party{ID: r.Subject.ID, Name: r.Subject.Name},
		Claims:         r.Claims,
		ExpirationDate: r.ExpirationDate,
	}
}

type SelfIssueRequest struct {
	Type           string         `json:"type" validate:"required,notblank"`
	HolderID       string         `json:"holderId" validate:"required,notblank"`
	HolderName     string         `json:"holderName"`
	Claims         map[string]any `json:"claims" validate:"required,min=1"`
	ExpirationDate *time.Time     `json:"expirationDate,omitempty"`
}

func (r *SelfIssueRequest) Normalize() {
	if r == nil {
		return
	}
	r.Type = strings.TrimSpace(r.Type)
	r.HolderID = strings.TrimSpace(r.HolderID)
	r.HolderName = strings.TrimSpace(r.HolderName)
}

func (r *SelfIssueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

// ToInput converts the HTTP request to a service input.
func (r *SelfIssueRequest) ToInput() service.SelfIssueInput {
	return service.SelfIssueInput{
		Type:           vc.CredentialType(r.Type),
		HolderID:       r.HolderID,
		HolderName:     r.HolderName,
		Claims:         r.Claims,
		ExpirationDate: r.ExpirationDate,
	}
}

// RestoreBackupRequest is the backup envelope posted for a full restore.
// Envelope validation happens in the service; the handler only decodes.
type RestoreBackupRequest struct {
	Version     string              `json:"version"`
	CreatedAt   time.Time           `json:"createdAt"`
	Count       int                 `json:"count"`
	Credentials []models.Credential `json:"credentials"`
}

// ToBackup converts the HTTP request to the domain backup envelope.
func (r *RestoreBackupRequest) ToBackup() *models.Backup {
	return &models.Backup{
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		Count:       r.Count,
		Credentials: r.Credentials,
	}
}
