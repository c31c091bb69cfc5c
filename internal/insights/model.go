package insights

import "time"

// Demand levels reported for an industry.
const (
	DemandHigh   = "High"
	DemandMedium = "Medium"
	DemandLow    = "Low"
)

// Market outlook values reported for an industry.
const (
	OutlookPositive = "Positive"
	OutlookNeutral  = "Neutral"
	OutlookNegative = "Negative"
)

// RefreshInterval is how long a generated insight stays fresh.
const RefreshInterval = 7 * 24 * time.Hour

// SalaryRange describes compensation for one role within an industry.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// Insight is the cached market snapshot for a single industry key.
type Insight struct {
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	NextUpdate        time.Time     `json:"nextUpdate"`
}

// Stale reports whether the insight is due for a refresh at the given time.
func (i Insight) Stale(now time.Time) bool {
	return !i.NextUpdate.After(now)
}
