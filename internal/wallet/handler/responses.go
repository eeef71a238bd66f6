package handler

import (
	"time"

	"eduraksha/internal/wallet/models"
)

// HTTP Response DTOs. Status is always the effective lifecycle state at
// response time, so an expired credential reads "expired" even though the
// stored record still says active.

type PartyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type CredentialResponse struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	Issuer            PartyResponse  `json:"issuer"`
	Subject           PartyResponse  `json:"subject"`
	IssuanceDate      time.Time      `json:"issuanceDate"`
	ExpirationDate    *time.Time     `json:"expirationDate,omitempty"`
	CredentialSubject map[string]any `json:"credentialSubject"`
	Proof             string         `json:"proof"`
	Status            string         `json:"status"`
	SelfIssued        bool           `json:"selfIssued"`
}

type CredentialListResponse struct {
	Count       int                  `json:"count"`
	Credentials []CredentialResponse `json:"credentials"`
}

type CreateCredentialResponse struct {
	ID string `json:"id"`
}

type StatusChangeResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

type RestoreReportResponse struct {
	Inserted []string                `json:"inserted"`
	Skipped  []SkippedRecordResponse `json:"skipped"`
}

type SkippedRecordResponse struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func toCredentialResponse(c *models.Credential, now time.Time) CredentialResponse {
	return CredentialResponse{
		ID:                c.ID,
		Type:              string(c.Type),
		Issuer:            PartyResponse{ID: c.Issuer.ID, Name: c.Issuer.Name},
		Subject:           PartyResponse{ID: c.Subject.ID, Name: c.Subject.Name},
		IssuanceDate:      c.IssuanceDate,
		ExpirationDate:    c.ExpirationDate,
		CredentialSubject: c.CredentialSubject,
		Proof:             c.Proof,
		Status:            string(c.EffectiveStatus(now)),
		SelfIssued:        c.SelfIssued,
	}
}

func toCredentialListResponse(creds []*models.Credential, now time.Time) CredentialListResponse {
	out := CredentialListResponse{
		Count:       len(creds),
		Credentials: make([]CredentialResponse, 0, len(creds)),
	}
	for _, c := range creds {
		out.Credentials = append(out.Credentials, toCredentialResponse(c, now))
	}
	return out
}

func toRestoreReportResponse(report *models.RestoreReport) RestoreReportResponse {
	out := RestoreReportResponse{
		Inserted: report.Inserted,
		Skipped:  make([]SkippedRecordResponse, 0, len(report.Skipped)),
	}
	if out.Inserted == nil {
		out.Inserted = []string{}
	}
	for _, s := range report.Skipped {
		out.Skipped = append(out.Skipped, SkippedRecordResponse{ID: s.ID, Reason: s.Reason})
	}
	return out
}
