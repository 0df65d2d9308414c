package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/ignite/campaign-insights/internal/domain"
)

// Panel ids. Exactly one is visible per ViewState.
const (
	PanelForm    = "campaignPanel"
	PanelStatus  = "analysisStatus"
	PanelResults = "resultsSection"
)

// Region ids of the results page.
const (
	RegionOverallScore          = "overallScore"
	RegionProcessingTime        = "processingTime"
	RegionOptimizationPotential = "optimizationPotential"
	RegionCompetitiveRank       = "competitiveRank"
	RegionKeyRecommendations    = "keyRecommendations"

	RegionDemographics           = "demographicsContent"
	RegionBehavioralPatterns     = "behavioralPatterns"
	RegionEngagementTrends       = "engagementTrends"
	RegionExpansionOpportunities = "expansionOpportunities"
	RegionRetentionInsights      = "retentionInsights"

	RegionCreativeElements            = "creativeElements"
	RegionPerformancePredictions      = "performancePredictions"
	RegionOptimizationRecommendations = "optimizationRecommendations"
	RegionBrandScore                  = "brandScore"
	RegionEmotionalResonance          = "emotionalResonance"

	RegionCompetitorActivities = "competitorActivities"
	RegionMarketThreats        = "marketThreats"
	RegionResponseStrategies   = "responseStrategies"
	RegionMarketOpportunities  = "marketOpportunities"
	RegionCompetitiveAdvantage = "competitiveAdvantage"

	RegionEmergingTrends        = "emergingTrends"
	RegionSeasonalPatterns      = "seasonalPatterns"
	RegionTimingRecommendations = "timingRecommendations"
	RegionCulturalInsights      = "culturalInsights"
	RegionViralPotential        = "viralPotential"
)

// RegionIDs lists every region in page order. Render fills each exactly once.
var RegionIDs = []string{
	RegionOverallScore, RegionProcessingTime, RegionOptimizationPotential, RegionCompetitiveRank, RegionKeyRecommendations,
	RegionDemographics, RegionBehavioralPatterns, RegionEngagementTrends, RegionExpansionOpportunities, RegionRetentionInsights,
	RegionCreativeElements, RegionPerformancePredictions, RegionOptimizationRecommendations, RegionBrandScore, RegionEmotionalResonance,
	RegionCompetitorActivities, RegionMarketThreats, RegionResponseStrategies, RegionMarketOpportunities, RegionCompetitiveAdvantage,
	RegionEmergingTrends, RegionSeasonalPatterns, RegionTimingRecommendations, RegionCulturalInsights, RegionViralPotential,
}

// The summary cards show two figures the analysis does not compute.
const (
	optimizationPotential = "+23%"
	competitiveRank       = "#3"
)

// RegionKind tells the page how to draw a region.
type RegionKind string

const (
	KindText  RegionKind = "text"
	KindList  RegionKind = "list"
	KindFacts RegionKind = "facts"
	KindBars  RegionKind = "bars"
)

// Region is the rendered content of one named display area. Tab is empty
// for the summary regions above the tabs.
type Region struct {
	ID    string       `json:"id"`
	Tab   domain.TabID `json:"tab,omitempty"`
	Kind  RegionKind   `json:"kind"`
	Text  string       `json:"text,omitempty"`
	Items []string     `json:"items,omitempty"`
	Facts []Fact       `json:"facts,omitempty"`
	Bars  []Bar        `json:"bars,omitempty"`
}

// Fact is one "label: text" line.
type Fact struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Bar is a percentage with its proportional bar. Text and Width carry the
// same rounded value, e.g. 0.78 gives "78%" for both.
type Bar struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Text    string `json:"text"`
	Width   string `json:"width"`
}

// Document is a fully rendered result. It is immutable once built.
type Document struct {
	CampaignName string   `json:"campaign_name"`
	List         []Region `json:"regions"`
	index        map[string]int
}

// Region looks up a region by id.
func (d *Document) Region(id string) (Region, bool) {
	i, ok := d.index[id]
	if !ok {
		return Region{}, false
	}
	return d.List[i], true
}

// TabRegions returns the regions shown under the given tab, or the summary
// regions for the empty tab id.
func (d *Document) TabRegions(tab domain.TabID) []Region {
	var out []Region
	for _, r := range d.List {
		if r.Tab == tab {
			out = append(out, r)
		}
	}
	return out
}

// Render maps every field of an analysis result onto its region. Lists
// keep their order and length. The result is built completely before it
// is returned, so callers never see a partial document.
func Render(res *domain.AnalysisResult) *Document {
	b := &builder{doc: &Document{CampaignName: res.CampaignName, index: make(map[string]int, len(RegionIDs))}}

	b.text(RegionOverallScore, "", ScoreText(res.OverallScore))
	b.text(RegionProcessingTime, "", res.ProcessingTime)
	b.text(RegionOptimizationPotential, "", optimizationPotential)
	b.text(RegionCompetitiveRank, "", competitiveRank)
	b.list(RegionKeyRecommendations, "", res.KeyRecommendations)

	a := res.AudienceInsights
	b.facts(RegionDemographics, domain.TabAudience, a.PrimaryDemographics)
	b.list(RegionBehavioralPatterns, domain.TabAudience, a.BehavioralPatterns)
	b.list(RegionEngagementTrends, domain.TabAudience, a.EngagementTrends)
	b.list(RegionExpansionOpportunities, domain.TabAudience, a.ExpansionOpportunities)
	b.list(RegionRetentionInsights, domain.TabAudience, a.RetentionInsights)

	c := res.CreativePerformance
	b.list(RegionCreativeElements, domain.TabCreative, c.CreativeElementsAnalysis)
	b.list(RegionPerformancePredictions, domain.TabCreative, c.PerformancePredictions)
	b.list(RegionOptimizationRecommendations, domain.TabCreative, c.OptimizationRecommendations)
	b.text(RegionBrandScore, domain.TabCreative, ScoreText(c.BrandConsistencyScore))
	b.bars(RegionEmotionalResonance, domain.TabCreative, c.EmotionalResonance)

	ci := res.CompetitiveIntelligence
	b.list(RegionCompetitorActivities, domain.TabCompetitive, ci.CompetitorActivities)
	b.list(RegionMarketThreats, domain.TabCompetitive, ci.MarketThreats)
	b.list(RegionResponseStrategies, domain.TabCompetitive, ci.ResponseStrategies)
	b.list(RegionMarketOpportunities, domain.TabCompetitive, ci.MarketOpportunities)
	b.list(RegionCompetitiveAdvantage, domain.TabCompetitive, ci.CompetitiveAdvantage)

	t := res.TrendAnalysis
	b.list(RegionEmergingTrends, domain.TabTrends, t.EmergingTrends)
	b.list(RegionSeasonalPatterns, domain.TabTrends, t.SeasonalPatterns)
	b.list(RegionTimingRecommendations, domain.TabTrends, t.TimingRecommendations)
	b.list(RegionCulturalInsights, domain.TabTrends, t.CulturalInsights)
	b.bars(RegionViralPotential, domain.TabTrends, t.ViralPotential)

	if len(b.doc.List) != len(RegionIDs) {
		panic(fmt.Sprintf("view: rendered %d regions, want %d", len(b.doc.List), len(RegionIDs)))
	}
	return b.doc
}

// NewBar rounds a fraction to a whole percentage. Out-of-range values are
// clamped to [0, 100].
func NewBar(label string, fraction float64) Bar {
	p := int(math.Round(fraction * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	s := fmt.Sprintf("%d%%", p)
	return Bar{Label: label, Percent: p, Text: s, Width: s}
}

// ScoreText formats a score given either as a fraction (0.87) or on a
// 0-100 scale (87) as a whole number. The local chains report fractions and
// remote payloads report 0-100, so the scale is inferred per value: anything
// at or below 1 is a fraction. A 0-100 score of exactly 1 therefore renders
// as "100"; scores that low do not occur in either source.
func ScoreText(v float64) string {
	if v <= 1 {
		v *= 100
	}
	return fmt.Sprintf("%d", int(math.Round(v)))
}

func humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

type builder struct {
	doc *Document
}

func (b *builder) add(r Region) {
	if _, dup := b.doc.index[r.ID]; dup {
		panic("view: region rendered twice: " + r.ID)
	}
	b.doc.index[r.ID] = len(b.doc.List)
	b.doc.List = append(b.doc.List, r)
}

func (b *builder) text(id string, tab domain.TabID, s string) {
	b.add(Region{ID: id, Tab: tab, Kind: KindText, Text: s})
}

func (b *builder) list(id string, tab domain.TabID, items []string) {
	b.add(Region{ID: id, Tab: tab, Kind: KindList, Items: append([]string{}, items...)})
}

func (b *builder) facts(id string, tab domain.TabID, f *domain.Facts) {
	r := Region{ID: id, Tab: tab, Kind: KindFacts, Facts: []Fact{}}
	if f != nil {
		for p := f.Oldest(); p != nil; p = p.Next() {
			r.Facts = append(r.Facts, Fact{Label: humanize(p.Key), Text: p.Value})
		}
	}
	b.add(r)
}

func (b *builder) bars(id string, tab domain.TabID, s *domain.Scores) {
	r := Region{ID: id, Tab: tab, Kind: KindBars, Bars: []Bar{}}
	if s != nil {
		for p := s.Oldest(); p != nil; p = p.Next() {
			r.Bars = append(r.Bars, NewBar(humanize(p.Key), p.Value))
		}
	}
	b.add(r)
}
