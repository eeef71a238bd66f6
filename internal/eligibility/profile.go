package eligibility

import (
	"strings"

	"eduraksha/contracts/vc"
)

// BuildProfile derives the ephemeral matching profile from the claim sets of
// a holder's active credentials. Later credentials win when the same claim
// appears twice, matching wallet insertion order.
func BuildProfile(claimSets []vc.ClaimSet) Profile {
	var p Profile
	for _, cs := range claimSets {
		for key, value := range cs.Claims {
			applyClaim(&p, key, value)
		}
	}
	return p
}

// applyClaim maps one claim onto a profile dimension. Unknown claims are
// ignored; the profile only ever carries the dimensions the matcher scores.
func applyClaim(p *Profile, key string, value any) {
	switch normalizeClaimKey(key) {
	case "annualincome", "income":
		if n, ok := asNumber(value); ok {
			p.Income = &n
		}
	case "caste":
		if s, ok := asString(value); ok {
			p.Caste = &s
		}
	case "markspercentage", "marks", "percentage":
		if n, ok := asNumber(value); ok {
			p.Marks = &n
		}
	case "region":
		if s, ok := asString(value); ok {
			s = strings.ToLower(s)
			p.Region = &s
		}
	case "disability":
		if b, ok := value.(bool); ok {
			p.Disability = &b
		}
	case "age":
		if n, ok := asNumber(value); ok {
			age := int(n)
			p.Age = &age
		}
	case "course":
		if s, ok := asString(value); ok {
			p.Course = &s
		}
	case "institution":
		if s, ok := asString(value); ok {
			p.Institution = &s
		}
	}
}

func normalizeClaimKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// asNumber accepts the numeric shapes JSON decoding and Go callers produce.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}
