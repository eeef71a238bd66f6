package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"eduraksha/internal/eligibility"
	"eduraksha/internal/eligibility/catalog"
	"eduraksha/internal/eligibility/metrics"
	"eduraksha/internal/eligibility/ports"
	"eduraksha/internal/platform/tracer"
	dErrors "eduraksha/pkg/domain-errors"
	"eduraksha/pkg/strutil"
)

// Option configures the Service.
type Option func(*Service)

// Service ranks the scholarship catalog against the profile derived from the
// holder's active credentials. The profile is rebuilt on every query and never
// stored.
type Service struct {
	catalog *catalog.Catalog
	wallet  ports.WalletPort
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	now     func() time.Time
}

// NewService wires an eligibility service over the catalog and the wallet port.
func NewService(cat *catalog.Catalog, wallet ports.WalletPort, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		catalog: cat,
		wallet:  wallet,
		logger:  logger,
		tracer:  tracer.NewNoop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer sets the tracer used around ranking and catalog refresh.
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

// Recommendations builds the profile from active credential claims and ranks
// the catalog against it. An empty profile yields an empty list, not an error.
func (s *Service) Recommendations(ctx context.Context) ([]eligibility.Recommendation, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEligibilityRank)
	recs, err := s.rank(ctx, span)
	span.End(err)
	return recs, err
}

func (s *Service) rank(ctx context.Context, span tracer.Span) ([]eligibility.Recommendation, error) {
	start := s.now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveRankLatency(time.Since(start).Seconds())
		}
	}()

	claimSets, err := s.wallet.ActiveClaimSets(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read active credential claims")
	}

	profile := eligibility.BuildProfile(claimSets)
	if s.metrics != nil {
		s.metrics.IncrementRecommendationQueries()
	}
	if profile.IsEmpty() {
		if s.metrics != nil {
			s.metrics.IncrementEmptyProfileQueries()
			s.metrics.ObserveMatchesReturned(0)
		}
		span.SetAttributes(tracer.Int64(tracer.AttrMatchCount, 0))
		return []eligibility.Recommendation{}, nil
	}

	scholarships, err := s.catalog.Scholarships(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scholarship catalog")
	}

	recs := eligibility.Rank(scholarships, profile)
	if s.metrics != nil {
		s.metrics.ObserveMatchesReturned(float64(len(recs)))
		s.metrics.SetCatalogSize(float64(len(scholarships)))
	}
	span.SetAttributes(
		tracer.Int64(tracer.AttrCatalogSize, int64(len(scholarships))),
		tracer.Int64(tracer.AttrMatchCount, int64(len(recs))),
	)
	return recs, nil
}

// Profile exposes the derived matching profile, so holders can see what the
// matcher knows about them.
func (s *Service) Profile(ctx context.Context) (eligibility.Profile, error) {
	claimSets, err := s.wallet.ActiveClaimSets(ctx)
	if err != nil {
		return eligibility.Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read active credential claims")
	}
	return eligibility.BuildProfile(claimSets), nil
}

// Scholarships returns the full catalog in catalog order.
func (s *Service) Scholarships(ctx context.Context) ([]eligibility.Scholarship, error) {
	scholarships, err := s.catalog.Scholarships(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scholarship catalog")
	}
	return scholarships, nil
}

// ScholarshipByID returns one catalog entry. Unknown ids return CodeNotFound.
func (s *Service) ScholarshipByID(ctx context.Context, id string) (*eligibility.Scholarship, error) {
	scholarships, err := s.Scholarships(ctx)
	if err != nil {
		return nil, err
	}
	for i := range scholarships {
		if scholarships[i].ID == id {
			sch := scholarships[i]
			return &sch, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "scholarship not found")
}

// SearchScholarships returns catalog entries whose name, description, source,
// or category contains the query, ignoring case.
func (s *Service) SearchScholarships(ctx context.Context, query string) ([]eligibility.Scholarship, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "search query must not be empty")
	}
	scholarships, err := s.Scholarships(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]eligibility.Scholarship, 0, len(scholarships))
	for _, sch := range scholarships {
		if matchesQuery(sch, query) {
			out = append(out, sch)
		}
	}
	return out, nil
}

func matchesQuery(s eligibility.Scholarship, query string) bool {
	return strutil.ContainsFold(s.Name, query) ||
		strutil.ContainsFold(s.Description, query) ||
		strutil.ContainsFold(s.Source, query) ||
		strutil.ContainsFold(s.Category, query)
}

// RefreshCatalog forces a fetch through the catalog fetcher.
func (s *Service) RefreshCatalog(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCatalogRefresh)
	scholarships, err := s.catalog.Refresh(ctx)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to refresh scholarship catalog")
		span.End(err)
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.IncrementCatalogRefreshes()
		s.metrics.SetCatalogSize(float64(len(scholarships)))
	}
	span.SetAttributes(tracer.Int64(tracer.AttrCatalogSize, int64(len(scholarships))))
	span.End(nil)
	return len(scholarships), nil
}
