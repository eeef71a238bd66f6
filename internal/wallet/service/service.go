package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eduraksha/contracts/vc"
	"eduraksha/internal/platform/tracer"
	"eduraksha/internal/wallet/metrics"
	"eduraksha/internal/wallet/models"
	"eduraksha/internal/wallet/schema"
	"eduraksha/internal/wallet/store"
	dErrors "eduraksha/pkg/domain-errors"
	"eduraksha/pkg/strutil"
)

// Self-issued credentials expire one year after issuance unless overridden.
const defaultSelfIssuedTTL = 365 * 24 * time.Hour

// Option configures the Service.
type Option func(*Service)

// Service owns the authoritative set of a holder's credentials and their
// lifecycle state. All mutations write through the store's persistence port;
// a failed snapshot write surfaces as CodePersistence with the in-memory
// state already rolled back by the store.
type Service struct {
	store         Store
	signer        Signer
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        tracer.Tracer
	now           func() time.Time
	selfIssuedTTL time.Duration
}

// NewService wires a wallet service over the given store and signer.
func NewService(st Store, signer Signer, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:         st,
		signer:        signer,
		logger:        logger,
		tracer:        tracer.NewNoop(),
		now:           time.Now,
		selfIssuedTTL: defaultSelfIssuedTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.selfIssuedTTL <= 0 {
		svc.selfIssuedTTL = defaultSelfIssuedTTL
	}
	return svc
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer sets the tracer used around mutating operations.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithClock injects the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSelfIssuedTTL configures the default validity of self-issued credentials.
// If not set or set to zero/negative, defaults to 1 year.
func WithSelfIssuedTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.selfIssuedTTL = ttl
		}
	}
}

// AddInput carries the fields for an externally issued credential.
type AddInput struct {
	Type           vc.CredentialType
	Issuer         models.Party
	Subject        models.Party
	Claims         map[string]any
	ExpirationDate *time.Time
}

// SelfIssueInput carries the fields for a holder-authored credential.
type SelfIssueInput struct {
	Type           vc.CredentialType
	HolderID       string
	HolderName     string
	Claims         map[string]any
	ExpirationDate *time.Time
}

// Add constructs a new credential with a fresh id, obtains a proof from the
// signer over the canonical serialization of the unsigned fields, stores it
// with status active, and returns the new id.
func (s *Service) Add(ctx context.Context, input AddInput) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanWalletAdd,
		tracer.String(tracer.AttrCredentialType, string(input.Type)),
		tracer.Bool(tracer.AttrSelfIssued, false),
	)
	id, err := s.issue(ctx, input, false)
	span.End(err)
	return id, err
}

// SelfIssue creates a credential where the holder is both issuer and subject.
// ExpirationDate defaults to issuance plus the configured TTL when omitted.
func (s *Service) SelfIssue(ctx context.Context, input SelfIssueInput) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanWalletSelfIssue,
		tracer.String(tracer.AttrCredentialType, string(input.Type)),
		tracer.Bool(tracer.AttrSelfIssued, true),
	)
	expiry := input.ExpirationDate
	if expiry == nil {
		t := s.now().Add(s.selfIssuedTTL)
		expiry = &t
	}
	holder := models.Party{ID: input.HolderID, Name: input.HolderName}
	id, err := s.issue(ctx, AddInput{
		Type:           input.Type,
		Issuer:         holder,
		Subject:        holder,
		Claims:         input.Claims,
		ExpirationDate: expiry,
	}, true)
	span.End(err)
	return id, err
}

func (s *Service) issue(ctx context.Context, input AddInput, selfIssued bool) (string, error) {
	if err := schema.ValidateClaims(input.Type, input.Claims); err != nil {
		return "", err
	}

	cred := &models.Credential{
		ID:                models.NewID(),
		Type:              input.Type,
		Issuer:            input.Issuer,
		Subject:           input.Subject,
		IssuanceDate:      s.now(),
		ExpirationDate:    input.ExpirationDate,
		CredentialSubject: input.Claims,
		Status:            models.StatusActive,
		SelfIssued:        selfIssued,
	}

	payload, err := cred.CanonicalPayload()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to canonicalize credential")
	}
	proof, err := s.signer.Sign(ctx, payload)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to obtain credential proof")
	}
	cred.Proof = proof

	if err := cred.Validate(); err != nil {
		return "", err
	}
	if err := s.store.Insert(ctx, cred); err != nil {
		return "", s.mapStoreError(err, "failed to store credential")
	}

	s.observeIssued(selfIssued)
	s.observeWalletSize(ctx)
	return cred.ID, nil
}

// Credential returns the record with the given id.
func (s *Service) Credential(ctx context.Context, id string) (*models.Credential, error) {
	cred, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err, "failed to read credential")
	}
	return cred, nil
}

// Credentials returns all records in insertion order.
func (s *Service) Credentials(ctx context.Context) ([]*models.Credential, error) {
	creds, err := s.store.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "failed to list credentials")
	}
	return creds, nil
}

// CredentialsByType returns records of the given type in insertion order.
func (s *Service) CredentialsByType(ctx context.Context, credType vc.CredentialType) ([]*models.Credential, error) {
	return s.filter(ctx, func(c *models.Credential) bool { return c.Type == credType })
}

// ActiveCredentials returns records that are neither revoked nor expired at
// the current time.
func (s *Service) ActiveCredentials(ctx context.Context) ([]*models.Credential, error) {
	now := s.now()
	return s.filter(ctx, func(c *models.Credential) bool { return c.IsActive(now) })
}

// SelfIssuedCredentials returns records authored by the holder.
func (s *Service) SelfIssuedCredentials(ctx context.Context) ([]*models.Credential, error) {
	return s.filter(ctx, func(c *models.Credential) bool { return c.SelfIssued })
}

// ExternalCredentials returns records issued by a party other than the holder.
func (s *Service) ExternalCredentials(ctx context.Context) ([]*models.Credential, error) {
	return s.filter(ctx, func(c *models.Credential) bool { return !c.SelfIssued })
}

// ActiveClaimSets projects the active credentials into the cross-module
// claims contract consumed by the eligibility module.
func (s *Service) ActiveClaimSets(ctx context.Context) ([]vc.ClaimSet, error) {
	active, err := s.ActiveCredentials(ctx)
	if err != nil {
		return nil, err
	}
	sets := make([]vc.ClaimSet, 0, len(active))
	for _, c := range active {
		sets = append(sets, c.ClaimSet())
	}
	return sets, nil
}

// Revoke transitions a credential to revoked. It returns true when the status
// changed, false with a nil error when the credential was already revoked, and
// a CodeNotFound error for unknown ids.
func (s *Service) Revoke(ctx context.Context, id string) (bool, error) {
	changed, err := s.updateStatus(ctx, id, models.StatusRevoked)
	if err == nil && changed {
		s.observeRevoked()
	}
	return changed, err
}

// Restore transitions a revoked credential back to active. Same contract as
// Revoke: false with nil error when already active, CodeNotFound when unknown.
func (s *Service) Restore(ctx context.Context, id string) (bool, error) {
	changed, err := s.updateStatus(ctx, id, models.StatusActive)
	if err == nil && changed {
		s.observeRestored()
	}
	return changed, err
}

func (s *Service) updateStatus(ctx context.Context, id string, target models.Status) (bool, error) {
	cred, err := s.store.Get(ctx, id)
	if err != nil {
		return false, s.mapStoreError(err, "failed to read credential")
	}
	if cred.Status == target {
		return false, nil
	}
	cred.Status = target
	if err := s.store.Update(ctx, cred); err != nil {
		return false, s.mapStoreError(err, "failed to update credential status")
	}
	return true, nil
}

// Remove deletes a credential by id. Unknown ids return CodeNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return s.mapStoreError(err, "failed to remove credential")
	}
	s.observeRemoved()
	s.observeWalletSize(ctx)
	return nil
}

// Export returns the canonical JSON snapshot of one record.
func (s *Service) Export(ctx context.Context, id string) ([]byte, error) {
	cred, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err, "failed to read credential")
	}
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode credential")
	}
	return data, nil
}

// Import parses an externally produced credential document, validates it
// against the document and per-type claim schemas, and inserts it. Duplicate
// ids fail with CodeConflict; malformed documents with CodeValidation.
func (s *Service) Import(ctx context.Context, raw []byte) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanWalletImport)
	id, err := s.importDocument(ctx, raw)
	span.End(err)
	return id, err
}

func (s *Service) importDocument(ctx context.Context, raw []byte) (string, error) {
	if err := schema.ValidateDocument(raw); err != nil {
		return "", err
	}
	var cred models.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, "failed to decode credential document")
	}
	if cred.Status == "" {
		cred.Status = models.StatusActive
	}
	if err := cred.Validate(); err != nil {
		return "", err
	}
	if err := schema.ValidateClaims(cred.Type, cred.CredentialSubject); err != nil {
		return "", err
	}
	if err := s.store.Insert(ctx, &cred); err != nil {
		return "", s.mapStoreError(err, "failed to store imported credential")
	}
	s.observeImported()
	s.observeWalletSize(ctx)
	return cred.ID, nil
}

// CreateBackup snapshots the full store.
func (s *Service) CreateBackup(ctx context.Context) (*models.Backup, error) {
	creds, err := s.store.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "failed to list credentials")
	}
	backup := &models.Backup{
		Version:     models.BackupVersion,
		CreatedAt:   s.now(),
		Count:       len(creds),
		Credentials: make([]models.Credential, 0, len(creds)),
	}
	for _, c := range creds {
		backup.Credentials = append(backup.Credentials, *c)
	}
	return backup, nil
}

// RestoreFromBackup validates the backup envelope, clears the store, and
// repopulates it record by record. Individual malformed or duplicate records
// are skipped with a warning rather than aborting the whole restore; the
// report tags every record as inserted or skipped so callers can audit drops.
func (s *Service) RestoreFromBackup(ctx context.Context, backup *models.Backup) (*models.RestoreReport, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanWalletRestore)
	report, err := s.restore(ctx, span, backup)
	span.End(err)
	return report, err
}

func (s *Service) restore(ctx context.Context, span tracer.Span, backup *models.Backup) (*models.RestoreReport, error) {
	if err := backup.ValidateEnvelope(); err != nil {
		return nil, err
	}

	report := &models.RestoreReport{}
	accepted := make([]*models.Credential, 0, len(backup.Credentials))
	seen := make(map[string]struct{}, len(backup.Credentials))

	for i := range backup.Credentials {
		cred := backup.Credentials[i]
		reason := ""
		if err := cred.Validate(); err != nil {
			reason = err.Error()
		} else if err := schema.ValidateClaims(cred.Type, cred.CredentialSubject); err != nil {
			reason = err.Error()
		} else if _, dup := seen[cred.ID]; dup {
			reason = "duplicate id within backup"
		}
		if reason != "" {
			report.Skipped = append(report.Skipped, models.SkippedRecord{ID: cred.ID, Reason: reason})
			span.AddEvent(tracer.EventRecordSkipped, tracer.String("credential_id", cred.ID))
			s.logWarn(ctx, "backup record skipped", "credential_id", cred.ID, "reason", reason)
			continue
		}
		seen[cred.ID] = struct{}{}
		accepted = append(accepted, &cred)
		report.Inserted = append(report.Inserted, cred.ID)
	}

	if err := s.store.ReplaceAll(ctx, accepted); err != nil {
		return nil, s.mapStoreError(err, "failed to restore credentials")
	}

	if s.metrics != nil {
		s.metrics.IncrementBackupRestores()
		s.metrics.AddRestoreRecordsSkipped(float64(len(report.Skipped)))
	}
	s.observeWalletSize(ctx)
	return report, nil
}

// Search returns credentials whose type, issuer name, subject name, or any
// claim value contains the query, ignoring case. Matches are returned in
// insertion order regardless of status.
func (s *Service) Search(ctx context.Context, query string) ([]*models.Credential, error) {
	start := s.now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveSearchLatency(time.Since(start).Seconds())
		}
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "search query must not be empty")
	}
	return s.filter(ctx, func(c *models.Credential) bool { return matchesQuery(c, query) })
}

func matchesQuery(c *models.Credential, query string) bool {
	if strutil.ContainsFold(string(c.Type), query) ||
		strutil.ContainsFold(c.Issuer.Name, query) ||
		strutil.ContainsFold(c.Subject.Name, query) {
		return true
	}
	for _, v := range c.CredentialSubject {
		if strutil.ContainsFold(fmt.Sprint(v), query) {
			return true
		}
	}
	return false
}

// Expiring returns active credentials whose expiration falls within the next
// daysThreshold days.
func (s *Service) Expiring(ctx context.Context, daysThreshold int) ([]*models.Credential, error) {
	if daysThreshold < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "days threshold must not be negative")
	}
	now := s.now()
	window := time.Duration(daysThreshold) * 24 * time.Hour
	return s.filter(ctx, func(c *models.Credential) bool { return c.ExpiresWithin(now, window) })
}

func (s *Service) filter(ctx context.Context, keep func(*models.Credential) bool) ([]*models.Credential, error) {
	creds, err := s.store.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "failed to list credentials")
	}
	var out []*models.Credential
	for _, c := range creds {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// mapStoreError translates store sentinel errors into domain errors.
func (s *Service) mapStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "credential not found")
	case errors.Is(err, store.ErrDuplicate):
		return dErrors.Wrap(err, dErrors.CodeConflict, "credential id already exists")
	case errors.Is(err, store.ErrPersist):
		return dErrors.Wrap(err, dErrors.CodePersistence, msg+": snapshot write failed")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func (s *Service) observeIssued(selfIssued bool) {
	if s.metrics == nil {
		return
	}
	origin := "external"
	if selfIssued {
		origin = "self_issued"
	}
	s.metrics.IncrementIssued(origin)
}

func (s *Service) observeRevoked() {
	if s.metrics != nil {
		s.metrics.IncrementRevoked()
	}
}

func (s *Service) observeRestored() {
	if s.metrics != nil {
		s.metrics.IncrementRestored()
	}
}

func (s *Service) observeImported() {
	if s.metrics != nil {
		s.metrics.IncrementImported()
	}
}

func (s *Service) observeRemoved() {
	if s.metrics != nil {
		s.metrics.IncrementRemoved()
	}
}

func (s *Service) observeWalletSize(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if count, err := s.store.Count(ctx); err == nil {
		s.metrics.SetWalletSize(float64(count))
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
