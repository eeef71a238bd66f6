package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduraksha/contracts/vc"
)

func TestBuildProfileMapsClaims(t *testing.T) {
	sets := []vc.ClaimSet{
		{Type: vc.CredentialTypeIncome, Claims: map[string]any{"annualIncome": 90000.0}},
		{Type: vc.CredentialTypeCaste, Claims: map[string]any{"caste": "SC"}},
		{Type: vc.CredentialTypeAcademic, Claims: map[string]any{
			"marksPercentage": 85.0,
			"course":          "B.Sc Physics",
			"institution":     "Government Science College",
		}},
		{Type: vc.CredentialTypeDomicile, Claims: map[string]any{"region": "Rural"}},
		{Type: vc.CredentialTypeDisability, Claims: map[string]any{"disability": true}},
	}

	p := BuildProfile(sets)
	require.NotNil(t, p.Income)
	assert.Equal(t, 90000.0, *p.Income)
	require.NotNil(t, p.Caste)
	assert.Equal(t, "SC", *p.Caste)
	require.NotNil(t, p.Marks)
	assert.Equal(t, 85.0, *p.Marks)
	require.NotNil(t, p.Region)
	assert.Equal(t, "rural", *p.Region)
	require.NotNil(t, p.Disability)
	assert.True(t, *p.Disability)
	require.NotNil(t, p.Course)
	assert.Equal(t, "B.Sc Physics", *p.Course)
	require.NotNil(t, p.Institution)
	assert.False(t, p.IsEmpty())
}

func TestBuildProfileLaterCredentialsWin(t *testing.T) {
	sets := []vc.ClaimSet{
		{Type: vc.CredentialTypeIncome, Claims: map[string]any{"annualIncome": 90000.0}},
		{Type: vc.CredentialTypeIncome, Claims: map[string]any{"annualIncome": 120000.0}},
	}

	p := BuildProfile(sets)
	require.NotNil(t, p.Income)
	assert.Equal(t, 120000.0, *p.Income)
}

func TestBuildProfileClaimKeyAliases(t *testing.T) {
	p := BuildProfile([]vc.ClaimSet{
		{Claims: map[string]any{"income": 50000.0}},
		{Claims: map[string]any{"marks": 72.0}},
		{Claims: map[string]any{"age": 19.0}},
	})

	require.NotNil(t, p.Income)
	assert.Equal(t, 50000.0, *p.Income)
	require.NotNil(t, p.Marks)
	assert.Equal(t, 72.0, *p.Marks)
	require.NotNil(t, p.Age)
	assert.Equal(t, 19, *p.Age)
}

func TestBuildProfileIgnoresUnusableValues(t *testing.T) {
	p := BuildProfile([]vc.ClaimSet{
		{Claims: map[string]any{
			"annualIncome": "ninety thousand",
			"caste":        "   ",
			"disability":   "yes",
			"hobby":        "chess",
		}},
	})
	assert.True(t, p.IsEmpty())
}

func TestBuildProfileIntegerNumbers(t *testing.T) {
	// Claims built in-process may carry int rather than float64.
	p := BuildProfile([]vc.ClaimSet{
		{Claims: map[string]any{"annualIncome": 90000}},
	})
	require.NotNil(t, p.Income)
	assert.Equal(t, 90000.0, *p.Income)
}

func TestBuildProfileEmpty(t *testing.T) {
	assert.True(t, BuildProfile(nil).IsEmpty())
	assert.True(t, BuildProfile([]vc.ClaimSet{}).IsEmpty())
}
