package ui

import (
	"github.com/osteele/liquid"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/view"
)

// Objectives offered as checkboxes. Objectives outside this list that a
// form already carries are appended so they stay selectable.
var Objectives = []string{
	"Brand Awareness",
	"Lead Generation",
	"Sales",
	"Customer Acquisition",
	"Engagement",
	"Demo Requests",
}

var tabLabels = map[domain.TabID]string{
	domain.TabAudience:    "Audience Intelligence",
	domain.TabCreative:    "Creative Performance",
	domain.TabCompetitive: "Competitive Intelligence",
	domain.TabTrends:      "Trend Analysis",
}

// Model flattens a snapshot into template bindings. Only maps, slices and
// scalars are produced.
func Model(s view.Snapshot) liquid.Bindings {
	panels := map[string]any{}
	for _, p := range []string{view.PanelForm, view.PanelStatus, view.PanelResults} {
		panels[p] = s.PanelVisible(p)
	}

	m := liquid.Bindings{
		"state":         string(s.State),
		"refresh":       s.State == domain.StateAnalyzing,
		"panels":        panels,
		"form":          formModel(s.Form),
		"stages":        stagesModel(s.Stages),
		"notifications": notificationsModel(s.Notifications),
		"tabs":          tabsModel(s),
		"has_results":   s.Document != nil,
	}

	if s.Document != nil {
		summary := map[string]any{}
		for _, r := range s.Document.TabRegions("") {
			summary[r.ID] = regionModel(r)
		}
		m["campaign_name"] = s.Document.CampaignName
		m["summary"] = summary
	}
	return m
}

func formModel(f domain.RawForm) map[string]any {
	checked := map[string]bool{}
	for _, o := range f.Objectives {
		checked[o] = true
	}
	var options []map[string]any
	seen := map[string]bool{}
	for _, o := range Objectives {
		options = append(options, map[string]any{"value": o, "checked": checked[o]})
		seen[o] = true
	}
	for _, o := range f.Objectives {
		if !seen[o] {
			options = append(options, map[string]any{"value": o, "checked": true})
			seen[o] = true
		}
	}

	return map[string]any{
		"campaign_name":   f.CampaignName,
		"platform":        f.Platform,
		"budget":          f.Budget,
		"target_audience": f.TargetAudience,
		"industry":        f.Industry,
		"objectives":      options,
	}
}

func stagesModel(stages []domain.Stage) []map[string]any {
	out := make([]map[string]any, 0, len(stages))
	for _, st := range stages {
		out = append(out, map[string]any{"index": st.Index, "name": st.Name, "complete": st.Complete})
	}
	return out
}

func notificationsModel(notes []domain.Notification) []map[string]any {
	out := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		out = append(out, map[string]any{"id": n.ID, "kind": string(n.Kind), "message": n.Message})
	}
	return out
}

func tabsModel(s view.Snapshot) []map[string]any {
	var out []map[string]any
	for _, t := range s.Tabs() {
		tab := map[string]any{
			"id":       string(t.ID),
			"panel_id": t.PanelID,
			"active":   t.Active,
			"label":    tabLabels[t.ID],
		}
		var regions []map[string]any
		if s.Document != nil {
			for _, r := range s.Document.TabRegions(t.ID) {
				regions = append(regions, regionModel(r))
			}
		}
		tab["regions"] = regions
		out = append(out, tab)
	}
	return out
}

func regionModel(r view.Region) map[string]any {
	facts := make([]map[string]any, 0, len(r.Facts))
	for _, f := range r.Facts {
		facts = append(facts, map[string]any{"label": f.Label, "text": f.Text})
	}
	bars := make([]map[string]any, 0, len(r.Bars))
	for _, b := range r.Bars {
		bars = append(bars, map[string]any{"label": b.Label, "text": b.Text, "width": b.Width})
	}
	return map[string]any{
		"id":    r.ID,
		"kind":  string(r.Kind),
		"title": regionTitles[r.ID],
		"text":  r.Text,
		"items": append([]string{}, r.Items...),
		"facts": facts,
		"bars":  bars,
	}
}

var regionTitles = map[string]string{
	view.RegionOverallScore:                "Overall Score",
	view.RegionProcessingTime:              "Processing Time",
	view.RegionOptimizationPotential:       "Optimization Potential",
	view.RegionCompetitiveRank:             "Competitive Rank",
	view.RegionKeyRecommendations:          "Key Recommendations",
	view.RegionDemographics:                "Primary Demographics",
	view.RegionBehavioralPatterns:          "Behavioral Patterns",
	view.RegionEngagementTrends:            "Engagement Trends",
	view.RegionExpansionOpportunities:      "Expansion Opportunities",
	view.RegionRetentionInsights:           "Retention Insights",
	view.RegionCreativeElements:            "Creative Elements",
	view.RegionPerformancePredictions:      "Performance Predictions",
	view.RegionOptimizationRecommendations: "Optimization Recommendations",
	view.RegionBrandScore:                  "Brand Consistency",
	view.RegionEmotionalResonance:          "Emotional Resonance",
	view.RegionCompetitorActivities:        "Competitor Activities",
	view.RegionMarketThreats:               "Market Threats",
	view.RegionResponseStrategies:          "Response Strategies",
	view.RegionMarketOpportunities:         "Market Opportunities",
	view.RegionCompetitiveAdvantage:        "Competitive Advantage",
	view.RegionEmergingTrends:              "Emerging Trends",
	view.RegionSeasonalPatterns:            "Seasonal Patterns",
	view.RegionTimingRecommendations:       "Timing Recommendations",
	view.RegionCulturalInsights:            "Cultural Insights",
	view.RegionViralPotential:              "Viral Potential",
}

// TabLabel returns the display name of a result tab.
func TabLabel(t domain.TabID) string { return tabLabels[t] }

// RegionTitle returns the heading shown above a region.
func RegionTitle(id string) string { return regionTitles[id] }
