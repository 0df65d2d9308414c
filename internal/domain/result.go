package domain

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Scores maps a label to a fraction in [0, 1]. Key order is the order the
// analysis produced them in and is kept through JSON.
type Scores = orderedmap.OrderedMap[string, float64]

// Facts maps a label to a short description, in display order.
type Facts = orderedmap.OrderedMap[string, string]

// NewScores builds Scores from labeled values, keeping argument order.
func NewScores(pairs ...ScorePair) *Scores {
	s := orderedmap.New[string, float64]()
	for _, p := range pairs {
		s.Set(p.Label, p.Value)
	}
	return s
}

// NewFacts builds Facts from label/text pairs.
func NewFacts(pairs ...FactPair) *Facts {
	f := orderedmap.New[string, string]()
	for _, p := range pairs {
		f.Set(p.Label, p.Text)
	}
	return f
}

// ScorePair is one labeled score.
type ScorePair struct {
	Label string
	Value float64
}

// FactPair is one labeled fact.
type FactPair struct {
	Label string
	Text  string
}

// AnalysisResult is the full output of one campaign analysis. It is
// produced once, rendered, and then discarded.
type AnalysisResult struct {
	CampaignName            string                  `json:"campaign_name"`
	OverallScore            float64                 `json:"overall_score"`
	ProcessingTime          string                  `json:"processing_time,omitempty"`
	KeyRecommendations      []string                `json:"key_recommendations"`
	AudienceInsights        AudienceInsights        `json:"audience_insights"`
	CreativePerformance     CreativePerformance     `json:"creative_performance"`
	CompetitiveIntelligence CompetitiveIntelligence `json:"competitive_intelligence"`
	TrendAnalysis           TrendAnalysis           `json:"trend_analysis"`
	Metadata                map[string]any          `json:"metadata,omitempty"`
}

// AudienceInsights is the output of the audience chain.
type AudienceInsights struct {
	PrimaryDemographics    *Facts   `json:"primary_demographics"`
	BehavioralPatterns     []string `json:"behavioral_patterns"`
	EngagementTrends       []string `json:"engagement_trends"`
	ExpansionOpportunities []string `json:"expansion_opportunities"`
	RetentionInsights      []string `json:"retention_insights"`
}

// CreativePerformance is the output of the creative chain.
type CreativePerformance struct {
	CreativeElementsAnalysis    []string `json:"creative_elements_analysis"`
	PerformancePredictions      []string `json:"performance_predictions"`
	OptimizationRecommendations []string `json:"optimization_recommendations"`
	EmotionalResonance          *Scores  `json:"emotional_resonance"`
	BrandConsistencyScore       float64  `json:"brand_consistency_score"`
}

// CompetitiveIntelligence is the output of the competitive chain.
type CompetitiveIntelligence struct {
	CompetitorActivities []string `json:"competitor_activities"`
	MarketThreats        []string `json:"market_threats"`
	ResponseStrategies   []string `json:"response_strategies"`
	MarketOpportunities  []string `json:"market_opportunities"`
	CompetitiveAdvantage []string `json:"competitive_advantage"`
}

// TrendAnalysis is the output of the trend chain.
type TrendAnalysis struct {
	EmergingTrends        []string `json:"emerging_trends"`
	SeasonalPatterns      []string `json:"seasonal_patterns"`
	ViralPotential        *Scores  `json:"viral_potential"`
	TimingRecommendations []string `json:"timing_recommendations"`
	CulturalInsights      []string `json:"cultural_insights"`
}

// Clone returns a deep copy. The ordered maps make a field-by-field copy
// error-prone, so the copy goes through the wire format.
func (r *AnalysisResult) Clone() (*AnalysisResult, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("cloning analysis result: %w", err)
	}
	var out AnalysisResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cloning analysis result: %w", err)
	}
	return &out, nil
}

// SampleCampaigns is the payload of the demo-data endpoint.
type SampleCampaigns struct {
	SampleCampaigns []CampaignForm `json:"sample_campaigns" yaml:"sample_campaigns"`
}
