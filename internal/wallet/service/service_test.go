package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"eduraksha/contracts/vc"
	"eduraksha/internal/wallet/models"
	"eduraksha/internal/wallet/store"
	dErrors "eduraksha/pkg/domain-errors"
)

// stubSigner issues deterministic proofs without any crypto.
type stubSigner struct{}

func (stubSigner) Sign(_ context.Context, payload []byte) (string, error) {
	return "proof:" + string(payload[:8]), nil
}

type ServiceSuite struct {
	suite.Suite
	ctx context.Context
	now time.Time
	kv  *store.MemoryKV
	svc *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s.kv = store.NewMemoryKV()

	st, err := store.New(s.kv)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.svc = NewService(st, stubSigner{}, logger,
		WithClock(func() time.Time { return s.now }),
	)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) addIncome(amount float64) string {
	id, err := s.svc.Add(s.ctx, AddInput{
		Type:    vc.CredentialTypeIncome,
		Issuer:  models.Party{ID: "did:gov:revenue-dept", Name: "Revenue Department"},
		Subject: models.Party{ID: "did:student:anita", Name: "Anita"},
		Claims:  map[string]any{"annualIncome": amount},
	})
	s.Require().NoError(err)
	return id
}

func (s *ServiceSuite) TestAddThenGet() {
	id := s.addIncome(90000)
	s.Require().Contains(id, "urn:uuid:")

	cred, err := s.svc.Credential(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(vc.CredentialTypeIncome, cred.Type)
	s.Equal(models.StatusActive, cred.Status)
	s.False(cred.SelfIssued)
	s.NotEmpty(cred.Proof)
	s.Equal(s.now, cred.IssuanceDate)
}

func (s *ServiceSuite) TestAddRejectsBadClaims() {
	_, err := s.svc.Add(s.ctx, AddInput{
		Type:    vc.CredentialTypeIncome,
		Issuer:  models.Party{ID: "did:gov:revenue-dept"},
		Subject: models.Party{ID: "did:student:anita"},
		Claims:  map[string]any{"annualIncome": "ninety thousand"},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestSelfIssueDefaultsExpiry() {
	id, err := s.svc.SelfIssue(s.ctx, SelfIssueInput{
		Type:       vc.CredentialTypeAcademic,
		HolderID:   "did:student:anita",
		HolderName: "Anita",
		Claims:     map[string]any{"marksPercentage": 85.0},
	})
	s.Require().NoError(err)

	cred, err := s.svc.Credential(s.ctx, id)
	s.Require().NoError(err)
	s.True(cred.SelfIssued)
	s.Equal(cred.Issuer, cred.Subject)
	s.Require().NotNil(cred.ExpirationDate)
	s.Equal(s.now.Add(defaultSelfIssuedTTL), *cred.ExpirationDate)
}

func (s *ServiceSuite) TestRevokeIdempotence() {
	id := s.addIncome(90000)

	changed, err := s.svc.Revoke(s.ctx, id)
	s.Require().NoError(err)
	s.True(changed)

	changed, err = s.svc.Revoke(s.ctx, id)
	s.Require().NoError(err)
	s.False(changed)

	_, err = s.svc.Revoke(s.ctx, "urn:uuid:missing")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestRevokedExcludedFromActive() {
	first := s.addIncome(90000)
	second := s.addIncome(150000)

	_, err := s.svc.Revoke(s.ctx, first)
	s.Require().NoError(err)

	active, err := s.svc.ActiveCredentials(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(second, active[0].ID)

	all, err := s.svc.Credentials(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *ServiceSuite) TestRestoreAfterRevoke() {
	id := s.addIncome(90000)

	_, err := s.svc.Revoke(s.ctx, id)
	s.Require().NoError(err)

	changed, err := s.svc.Restore(s.ctx, id)
	s.Require().NoError(err)
	s.True(changed)

	cred, err := s.svc.Credential(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.StatusActive, cred.Status)
}

func (s *ServiceSuite) TestExportImportRoundTrip() {
	id := s.addIncome(90000)
	doc, err := s.svc.Export(s.ctx, id)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Remove(s.ctx, id))

	imported, err := s.svc.Import(s.ctx, doc)
	s.Require().NoError(err)
	s.Equal(id, imported)

	cred, err := s.svc.Credential(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(90000.0, cred.CredentialSubject["annualIncome"])
}

func (s *ServiceSuite) TestExportMissing() {
	_, err := s.svc.Export(s.ctx, "urn:uuid:missing")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestImportDuplicateConflicts() {
	id := s.addIncome(90000)
	doc, err := s.svc.Export(s.ctx, id)
	s.Require().NoError(err)

	_, err = s.svc.Import(s.ctx, doc)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestImportMalformed() {
	for name, doc := range map[string]string{
		"not json":      "not json",
		"empty object":  "{}",
		"missing proof": `{"id":"urn:uuid:x","type":"IncomeCertificate","issuer":{"id":"i"},"subject":{"id":"s"},"issuanceDate":"2026-01-10T00:00:00Z","credentialSubject":{"annualIncome":1}}`,
	} {
		_, err := s.svc.Import(s.ctx, []byte(doc))
		s.Require().Error(err, name)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), name)
	}
}

func (s *ServiceSuite) TestBackupRoundTrip() {
	first := s.addIncome(90000)
	second := s.addIncome(150000)
	_, err := s.svc.Revoke(s.ctx, second)
	s.Require().NoError(err)

	backup, err := s.svc.CreateBackup(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.BackupVersion, backup.Version)
	s.Equal(2, backup.Count)

	// Wipe and restore through a JSON round trip, as a client would.
	s.Require().NoError(s.svc.Remove(s.ctx, first))
	s.Require().NoError(s.svc.Remove(s.ctx, second))

	data, err := json.Marshal(backup)
	s.Require().NoError(err)
	var restored models.Backup
	s.Require().NoError(json.Unmarshal(data, &restored))

	report, err := s.svc.RestoreFromBackup(s.ctx, &restored)
	s.Require().NoError(err)
	s.ElementsMatch([]string{first, second}, report.Inserted)
	s.Empty(report.Skipped)

	cred, err := s.svc.Credential(s.ctx, second)
	s.Require().NoError(err)
	s.Equal(models.StatusRevoked, cred.Status)
}

func (s *ServiceSuite) TestRestoreSkipsBadRecords() {
	good := s.addIncome(90000)
	backup, err := s.svc.CreateBackup(s.ctx)
	s.Require().NoError(err)

	bad := backup.Credentials[0]
	bad.ID = "urn:uuid:bad"
	bad.Proof = ""
	dup := backup.Credentials[0]
	backup.Credentials = append(backup.Credentials, bad, dup)

	report, err := s.svc.RestoreFromBackup(s.ctx, backup)
	s.Require().NoError(err)
	s.Equal([]string{good}, report.Inserted)
	s.Require().Len(report.Skipped, 2)
	s.Equal("urn:uuid:bad", report.Skipped[0].ID)
	s.Equal(good, report.Skipped[1].ID)
	s.Contains(report.Skipped[1].Reason, "duplicate")
}

func (s *ServiceSuite) TestRestoreRejectsBadEnvelope() {
	_, err := s.svc.RestoreFromBackup(s.ctx, &models.Backup{Version: "9.9", Credentials: []models.Credential{}})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRestoreFailed))
}

func (s *ServiceSuite) TestSearchMatchesClaimValues() {
	s.addIncome(90000)
	_, err := s.svc.Add(s.ctx, AddInput{
		Type:    vc.CredentialTypeCaste,
		Issuer:  models.Party{ID: "did:gov:social-welfare", Name: "Social Welfare Department"},
		Subject: models.Party{ID: "did:student:anita", Name: "Anita"},
		Claims:  map[string]any{"caste": "SC"},
	})
	s.Require().NoError(err)

	matches, err := s.svc.Search(s.ctx, "sc")
	s.Require().NoError(err)
	// Matches the claim value "SC" and nothing about the income record.
	s.Require().Len(matches, 1)
	s.Equal(vc.CredentialTypeCaste, matches[0].Type)

	matches, err = s.svc.Search(s.ctx, "revenue")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(vc.CredentialTypeIncome, matches[0].Type)

	_, err = s.svc.Search(s.ctx, "   ")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestExpiringWindow() {
	soon := s.now.Add(10 * 24 * time.Hour)
	later := s.now.Add(90 * 24 * time.Hour)

	inWindow, err := s.svc.Add(s.ctx, AddInput{
		Type:           vc.CredentialTypeIncome,
		Issuer:         models.Party{ID: "did:gov:revenue-dept"},
		Subject:        models.Party{ID: "did:student:anita"},
		Claims:         map[string]any{"annualIncome": 90000.0},
		ExpirationDate: &soon,
	})
	s.Require().NoError(err)

	_, err = s.svc.Add(s.ctx, AddInput{
		Type:           vc.CredentialTypeCaste,
		Issuer:         models.Party{ID: "did:gov:social-welfare"},
		Subject:        models.Party{ID: "did:student:anita"},
		Claims:         map[string]any{"caste": "SC"},
		ExpirationDate: &later,
	})
	s.Require().NoError(err)

	expiring, err := s.svc.Expiring(s.ctx, 30)
	s.Require().NoError(err)
	s.Require().Len(expiring, 1)
	s.Equal(inWindow, expiring[0].ID)

	_, err = s.svc.Expiring(s.ctx, -1)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestActiveClaimSets() {
	s.addIncome(90000)
	revoked := s.addIncome(150000)
	_, err := s.svc.Revoke(s.ctx, revoked)
	s.Require().NoError(err)

	sets, err := s.svc.ActiveClaimSets(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sets, 1)
	s.Equal(vc.CredentialTypeIncome, sets[0].Type)
	s.Equal(90000.0, sets[0].Claims["annualIncome"])
}

func (s *ServiceSuite) TestOriginProjections() {
	external := s.addIncome(90000)
	selfIssued, err := s.svc.SelfIssue(s.ctx, SelfIssueInput{
		Type:     vc.CredentialTypeAcademic,
		HolderID: "did:student:anita",
		Claims:   map[string]any{"marksPercentage": 85.0},
	})
	s.Require().NoError(err)

	own, err := s.svc.SelfIssuedCredentials(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal(selfIssued, own[0].ID)

	ext, err := s.svc.ExternalCredentials(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(ext, 1)
	s.Equal(external, ext[0].ID)

	byType, err := s.svc.CredentialsByType(s.ctx, vc.CredentialTypeAcademic)
	s.Require().NoError(err)
	s.Require().Len(byType, 1)
	s.Equal(selfIssued, byType[0].ID)
}

func (s *ServiceSuite) TestExpiredCredentialLeavesStoredStatusAlone() {
	exp := s.now.Add(24 * time.Hour)
	id, err := s.svc.Add(s.ctx, AddInput{
		Type:           vc.CredentialTypeIncome,
		Issuer:         models.Party{ID: "did:gov:revenue-dept"},
		Subject:        models.Party{ID: "did:student:anita"},
		Claims:         map[string]any{"annualIncome": 90000.0},
		ExpirationDate: &exp,
	})
	s.Require().NoError(err)

	// Move the clock past expiry.
	s.now = s.now.Add(48 * time.Hour)

	active, err := s.svc.ActiveCredentials(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)

	cred, err := s.svc.Credential(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.StatusActive, cred.Status)
	s.Equal(models.StatusExpired, cred.EffectiveStatus(s.now))
}
