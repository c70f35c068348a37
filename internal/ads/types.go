package ads

import "math"

// CampaignSpec describes one campaign to materialize on the ads
// platform, including every ad set to create under it.  Budgets are
// given in major currency units and converted to minor units (×100)
// on the wire.
type CampaignSpec struct {
	Name                string      `json:"name"`
	Objective           string      `json:"objective"`
	Status              string      `json:"status"`
	SpecialAdCategories []string    `json:"special_ad_categories"`
	DailyBudget         float64     `json:"daily_budget"`
	AdSets              []AdSetSpec `json:"ad_sets"`
}

// AdSetSpec bundles targeting, bid and creative for one ad set.
type AdSetSpec struct {
	Name        string        `json:"name"`
	DailyBudget float64       `json:"daily_budget"`
	BidAmount   int           `json:"bid_amount"`
	Targeting   TargetingSpec `json:"targeting"`
	Creative    CreativeSpec  `json:"creative"`
}

// TargetingSpec mirrors the platform's targeting sub-object for the
// fields this platform actually sets.
type TargetingSpec struct {
	AgeMin              int      `json:"age_min"`
	AgeMax              int      `json:"age_max"`
	Genders             []int    `json:"genders"`
	Countries           []string `json:"countries"`
	InterestIDs         []string `json:"interest_ids"`
	BehaviorIDs         []string `json:"behavior_ids"`
	ExcludedInterestIDs []string `json:"excluded_interest_ids"`
}

// CreativeSpec is the rendered ad content.  When VideoPath is set the
// video is uploaded first and the creative references the returned
// video id; otherwise a link creative is built.
type CreativeSpec struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	LinkURL      string `json:"link_url"`
	ImageURL     string `json:"image_url"`
	VideoPath    string `json:"video_path"`
	CallToAction string `json:"call_to_action"`
}

// AdSetResult carries the external ids created for one ad set.
type AdSetResult struct {
	AdSetID    string `json:"ad_set_id"`
	VideoID    string `json:"video_id,omitempty"`
	CreativeID string `json:"creative_id"`
	AdID       string `json:"ad_id"`
}

// CampaignResult is the full set of external ids a successful run
// produced.  On failure the partial result accompanies the error so
// callers can see what already exists on the platform; nothing is
// rolled back.
type CampaignResult struct {
	CampaignID string        `json:"campaign_id"`
	AdSets     []AdSetResult `json:"ad_sets"`
}

// Insights is the campaign-level report read back from the platform.
type Insights struct {
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
	CTR         string `json:"ctr"`
	CPC         string `json:"cpc"`
	Reach       string `json:"reach"`
}

// optimizationGoals maps a campaign objective to the optimization
// goal the platform requires for its ad sets.
var optimizationGoals = map[string]string{
	"OUTCOME_TRAFFIC":    "LANDING_PAGE_VIEWS",
	"OUTCOME_LEADS":      "LEAD_GENERATION",
	"OUTCOME_ENGAGEMENT": "POST_ENGAGEMENT",
	"OUTCOME_AWARENESS":  "REACH",
	"OUTCOME_SALES":      "OFFSITE_CONVERSIONS",
}

// OptimizationGoalFor returns the required optimization goal for a
// campaign objective, defaulting to LINK_CLICKS for unknown values.
func OptimizationGoalFor(objective string) string {
	if g, ok := optimizationGoals[objective]; ok {
		return g
	}
	return "LINK_CLICKS"
}

// MinorUnits converts a budget in major currency units to the integer
// minor units the platform expects.  Rounded, not truncated: 19.99
// has no exact float representation and would floor to 1998.
func MinorUnits(major float64) int {
	return int(math.Round(major * 100))
}
