package users

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxExperienceYears = 50
	maxBioLength       = 500
)

// ValidationError reports a rejected onboarding payload. The field name uses
// the request's JSON key so handlers can echo it back verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// OnboardingRequest is the raw payload before normalization.
type OnboardingRequest struct {
	Industry    string   `json:"industry"`
	SubIndustry string   `json:"subIndustry"`
	Experience  *int     `json:"experience"`
	Skills      []string `json:"skills"`
	Bio         string   `json:"bio"`
}

// Validate normalizes the request into an OnboardingUpdate or reports the
// first failing field.
func (r OnboardingRequest) Validate() (OnboardingUpdate, error) {
	industry := strings.TrimSpace(r.Industry)
	if industry == "" {
		return OnboardingUpdate{}, &ValidationError{Field: "industry", Reason: "is required"}
	}
	subIndustry := strings.TrimSpace(r.SubIndustry)
	if subIndustry == "" {
		return OnboardingUpdate{}, &ValidationError{Field: "subIndustry", Reason: "is required"}
	}
	if r.Experience == nil {
		return OnboardingUpdate{}, &ValidationError{Field: "experience", Reason: "is required"}
	}
	if *r.Experience < 0 || *r.Experience > maxExperienceYears {
		return OnboardingUpdate{}, &ValidationError{
			Field:  "experience",
			Reason: fmt.Sprintf("must be between 0 and %d", maxExperienceYears),
		}
	}
	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	if len(skills) == 0 {
		return OnboardingUpdate{}, &ValidationError{Field: "skills", Reason: "at least one skill is required"}
	}
	bio := strings.TrimSpace(r.Bio)
	if utf8.RuneCountInString(bio) > maxBioLength {
		return OnboardingUpdate{}, &ValidationError{
			Field:  "bio",
			Reason: fmt.Sprintf("must be at most %d characters", maxBioLength),
		}
	}
	return OnboardingUpdate{
		Industry:   IndustryKey(industry, subIndustry),
		Experience: *r.Experience,
		Skills:     skills,
		Bio:        bio,
	}, nil
}

// IndustryKey builds the canonical industry key from an industry and
// sub-industry, e.g. ("tech", "Software Development") -> "tech-software-development".
// Spaces in either part become hyphens so the key is stable as a primary key.
func IndustryKey(industry, subIndustry string) string {
	joined := strings.TrimSpace(industry) + "-" + strings.TrimSpace(subIndustry)
	return strings.ReplaceAll(strings.ToLower(joined), " ", "-")
}
