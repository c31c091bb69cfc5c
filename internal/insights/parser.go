package insights

import (
	"fmt"

	"coach-backend/internal/ai"
)

// insightPayload is the JSON shape the model is prompted to return.
type insightPayload struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

// ParseInsight decodes a raw model completion into an Insight. The raw text
// may be wrapped in markdown code fences. Any schema violation is reported
// as a malformed-response error so callers never persist a partial insight.
func ParseInsight(industry, raw string) (Insight, error) {
	var payload insightPayload
	if err := ai.DecodeJSON(raw, &payload); err != nil {
		return Insight{}, err
	}
	if err := validatePayload(payload); err != nil {
		return Insight{}, &ai.MalformedResponseError{Raw: raw, Err: err}
	}
	return Insight{
		Industry:          industry,
		SalaryRanges:      payload.SalaryRanges,
		GrowthRate:        payload.GrowthRate,
		DemandLevel:       payload.DemandLevel,
		TopSkills:         payload.TopSkills,
		MarketOutlook:     payload.MarketOutlook,
		KeyTrends:         payload.KeyTrends,
		RecommendedSkills: payload.RecommendedSkills,
	}, nil
}

func validatePayload(p insightPayload) error {
	if len(p.SalaryRanges) == 0 {
		return fmt.Errorf("salaryRanges is empty")
	}
	for i, sr := range p.SalaryRanges {
		if sr.Role == "" {
			return fmt.Errorf("salaryRanges[%d].role is empty", i)
		}
	}
	switch p.DemandLevel {
	case DemandHigh, DemandMedium, DemandLow:
	default:
		return fmt.Errorf("demandLevel %q is not one of High, Medium, Low", p.DemandLevel)
	}
	switch p.MarketOutlook {
	case OutlookPositive, OutlookNeutral, OutlookNegative:
	default:
		return fmt.Errorf("marketOutlook %q is not one of Positive, Neutral, Negative", p.MarketOutlook)
	}
	if len(p.TopSkills) == 0 {
		return fmt.Errorf("topSkills is empty")
	}
	if len(p.KeyTrends) == 0 {
		return fmt.Errorf("keyTrends is empty")
	}
	if len(p.RecommendedSkills) == 0 {
		return fmt.Errorf("recommendedSkills is empty")
	}
	return nil
}
