package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"eduraksha/contracts/vc"
	"eduraksha/internal/eligibility"
	"eduraksha/internal/eligibility/catalog"
	dErrors "eduraksha/pkg/domain-errors"
)

// stubWallet returns canned claim sets for the port.
type stubWallet struct {
	sets []vc.ClaimSet
	err  error
}

func (s *stubWallet) ActiveClaimSets(_ context.Context) ([]vc.ClaimSet, error) {
	return s.sets, s.err
}

func fptr(f float64) *float64 { return &f }

type EligibilitySuite struct {
	suite.Suite
	ctx    context.Context
	wallet *stubWallet
	svc    *Service
}

func (s *EligibilitySuite) SetupTest() {
	s.ctx = context.Background()
	s.wallet = &stubWallet{}

	cat := catalog.New(catalog.FetcherFunc(func(_ context.Context) ([]eligibility.Scholarship, error) {
		return []eligibility.Scholarship{
			{
				ID:       "nsp-post-matric-sc",
				Name:     "Post-Matric Scholarship for SC Students",
				Source:   "National Scholarship Portal",
				Category: "Post-Matric",
				Criteria: eligibility.Criteria{
					IncomeMax: fptr(250000),
					Castes:    []string{"SC"},
					MarksMin:  fptr(60),
				},
			},
			{
				ID:       "merit-open",
				Name:     "Open Merit Scholarship",
				Source:   "State Government",
				Category: "Merit",
				Criteria: eligibility.Criteria{MarksMin: fptr(95)},
			},
		}, nil
	}))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.svc = NewService(cat, s.wallet, logger)
}

func TestEligibilitySuite(t *testing.T) {
	suite.Run(t, new(EligibilitySuite))
}

func (s *EligibilitySuite) TestRecommendationsFullMatch() {
	s.wallet.sets = []vc.ClaimSet{
		{Type: vc.CredentialTypeIncome, Claims: map[string]any{"annualIncome": 90000.0}},
		{Type: vc.CredentialTypeCaste, Claims: map[string]any{"caste": "SC"}},
		{Type: vc.CredentialTypeAcademic, Claims: map[string]any{"marksPercentage": 85.0}},
	}

	recs, err := s.svc.Recommendations(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(recs, 1)
	s.Equal("nsp-post-matric-sc", recs[0].Scholarship.ID)
	s.Equal(100, recs[0].MatchScore)
	s.Len(recs[0].MatchReasons, 3)
	s.Empty(recs[0].MissingCriteria)
}

func (s *EligibilitySuite) TestRecommendationsEmptyProfile() {
	s.wallet.sets = nil

	recs, err := s.svc.Recommendations(s.ctx)
	s.Require().NoError(err)
	s.Empty(recs)
}

func (s *EligibilitySuite) TestRecommendationsWalletFailure() {
	s.wallet.err = errors.New("store offline")

	_, err := s.svc.Recommendations(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *EligibilitySuite) TestProfileProjection() {
	s.wallet.sets = []vc.ClaimSet{
		{Type: vc.CredentialTypeIncome, Claims: map[string]any{"annualIncome": 90000.0}},
	}

	profile, err := s.svc.Profile(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(profile.Income)
	s.Equal(90000.0, *profile.Income)
	s.Nil(profile.Caste)
}

func (s *EligibilitySuite) TestScholarshipByID() {
	sch, err := s.svc.ScholarshipByID(s.ctx, "merit-open")
	s.Require().NoError(err)
	s.Equal("Open Merit Scholarship", sch.Name)

	_, err = s.svc.ScholarshipByID(s.ctx, "nope")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *EligibilitySuite) TestSearchScholarships() {
	matches, err := s.svc.SearchScholarships(s.ctx, "post-matric")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal("nsp-post-matric-sc", matches[0].ID)

	matches, err = s.svc.SearchScholarships(s.ctx, "government")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal("merit-open", matches[0].ID)

	_, err = s.svc.SearchScholarships(s.ctx, "  ")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *EligibilitySuite) TestRefreshCatalog() {
	count, err := s.svc.RefreshCatalog(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}
