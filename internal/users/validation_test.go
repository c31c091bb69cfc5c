package users

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func validRequest() OnboardingRequest {
	return OnboardingRequest{
		Industry:    "tech",
		SubIndustry: "Software Development",
		Experience:  intPtr(5),
		Skills:      []string{"Go", "Postgres"},
		Bio:         "Backend engineer.",
	}
}

func TestValidateBuildsIndustryKey(t *testing.T) {
	update, err := validRequest().Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if update.Industry != "tech-software-development" {
		t.Fatalf("industry key = %q", update.Industry)
	}
}

func TestValidateExperienceBounds(t *testing.T) {
	cases := []struct {
		name       string
		experience int
		wantErr    bool
	}{
		{"zero", 0, false},
		{"max", 50, false},
		{"negative", -1, true},
		{"over max", 51, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Experience = intPtr(tc.experience)
			_, err := req.Validate()
			if tc.wantErr && !IsValidation(err) {
				t.Fatalf("experience %d: expected validation error, got %v", tc.experience, err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("experience %d: %v", tc.experience, err)
			}
		})
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	req := validRequest()
	req.Industry = "  "
	if _, err := req.Validate(); !IsValidation(err) {
		t.Fatalf("blank industry: got %v", err)
	}

	req = validRequest()
	req.SubIndustry = ""
	if _, err := req.Validate(); !IsValidation(err) {
		t.Fatalf("blank subIndustry: got %v", err)
	}

	req = validRequest()
	req.Experience = nil
	if _, err := req.Validate(); !IsValidation(err) {
		t.Fatalf("missing experience: got %v", err)
	}

	req = validRequest()
	req.Skills = []string{" ", ""}
	if _, err := req.Validate(); !IsValidation(err) {
		t.Fatalf("blank skills: got %v", err)
	}
}

func TestValidateBioLength(t *testing.T) {
	req := validRequest()
	req.Bio = strings.Repeat("a", maxBioLength)
	if _, err := req.Validate(); err != nil {
		t.Fatalf("bio at limit: %v", err)
	}

	req.Bio = strings.Repeat("a", maxBioLength+1)
	if _, err := req.Validate(); !IsValidation(err) {
		t.Fatal("bio over limit should fail validation")
	}
}

func TestIndustryKeyNormalizesCaseAndSpaces(t *testing.T) {
	cases := []struct {
		industry    string
		subIndustry string
		want        string
	}{
		{"Tech", "Data Science And ML", "tech-data-science-and-ml"},
		{"Financial Services", "Investment Banking", "financial-services-investment-banking"},
		{" tech ", " Software Development ", "tech-software-development"},
	}
	for _, tc := range cases {
		if got := IndustryKey(tc.industry, tc.subIndustry); got != tc.want {
			t.Fatalf("IndustryKey(%q, %q) = %q, want %q", tc.industry, tc.subIndustry, got, tc.want)
		}
	}
}

func TestValidateBioCountsCharactersNotBytes(t *testing.T) {
	req := validRequest()
	req.Bio = strings.Repeat("é", maxBioLength)
	if _, err := req.Validate(); err != nil {
		t.Fatalf("multibyte bio at limit: %v", err)
	}

	req.Bio = strings.Repeat("é", maxBioLength+1)
	if _, err := req.Validate(); !IsValidation(err) {
		t.Fatal("multibyte bio over limit should fail validation")
	}
}
