package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/source"
)

func TestRenderFillsEveryRegionOnce(t *testing.T) {
	doc := Render(source.DemoResult())

	require.Len(t, doc.List, len(RegionIDs))
	seen := map[string]int{}
	for _, r := range doc.List {
		seen[r.ID]++
	}
	for _, id := range RegionIDs {
		assert.Equal(t, 1, seen[id], "region %s", id)
	}
}

func TestRenderSummary(t *testing.T) {
	doc := Render(source.DemoResult())

	cases := map[string]string{
		RegionOverallScore:          "87",
		RegionProcessingTime:        "1.7s",
		RegionOptimizationPotential: "+23%",
		RegionCompetitiveRank:       "#3",
		RegionBrandScore:            "87",
	}
	for id, want := range cases {
		r, ok := doc.Region(id)
		require.True(t, ok, id)
		assert.Equal(t, KindText, r.Kind)
		assert.Equal(t, want, r.Text, id)
	}
}

func TestRenderListsKeepOrderAndLength(t *testing.T) {
	res := source.DemoResult()
	doc := Render(res)

	r, ok := doc.Region(RegionKeyRecommendations)
	require.True(t, ok)
	assert.Equal(t, res.KeyRecommendations, r.Items)

	r, _ = doc.Region(RegionRetentionInsights)
	assert.Equal(t, res.AudienceInsights.RetentionInsights, r.Items)
	assert.Equal(t, domain.TabAudience, r.Tab)

	r, _ = doc.Region(RegionCulturalInsights)
	assert.Equal(t, res.TrendAnalysis.CulturalInsights, r.Items)
	assert.Equal(t, domain.TabTrends, r.Tab)

	// The document owns its lists.
	res.KeyRecommendations[0] = "changed"
	r, _ = doc.Region(RegionKeyRecommendations)
	assert.NotEqual(t, "changed", r.Items[0])
}

func TestRenderBars(t *testing.T) {
	doc := Render(source.DemoResult())

	r, ok := doc.Region(RegionEmotionalResonance)
	require.True(t, ok)
	require.Len(t, r.Bars, 5)
	assert.Equal(t, Bar{Label: "excitement", Percent: 78, Text: "78%", Width: "78%"}, r.Bars[0])
	assert.Equal(t, "trust", r.Bars[1].Label)

	r, _ = doc.Region(RegionViralPotential)
	require.Len(t, r.Bars, 4)
	assert.Equal(t, "video content", r.Bars[0].Label)
	assert.Equal(t, "73%", r.Bars[0].Text)
	assert.Equal(t, "user generated content", r.Bars[1].Label)
}

func TestRenderFacts(t *testing.T) {
	res := &domain.AnalysisResult{
		AudienceInsights: domain.AudienceInsights{
			PrimaryDemographics: domain.NewFacts(
				domain.FactPair{Label: "age_range", Text: "25-40"},
				domain.FactPair{Label: "income_level", Text: "$75k+"},
			),
		},
	}
	doc := Render(res)

	r, ok := doc.Region(RegionDemographics)
	require.True(t, ok)
	assert.Equal(t, []Fact{{Label: "age range", Text: "25-40"}, {Label: "income level", Text: "$75k+"}}, r.Facts)

	// Missing maps render as empty regions rather than being skipped.
	r, _ = doc.Region(RegionViralPotential)
	assert.Empty(t, r.Bars)
	assert.Len(t, doc.List, len(RegionIDs))
}

func TestNewBar(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.785, 79},
		{0.5, 50},
		{1, 100},
		{1.4, 100},
		{-0.2, 0},
	}
	for _, tt := range tests {
		b := NewBar("x", tt.in)
		assert.Equal(t, tt.want, b.Percent, "%v", tt.in)
		assert.Equal(t, b.Text, b.Width)
	}
}

func TestScoreText(t *testing.T) {
	assert.Equal(t, "77", ScoreText(0.77))
	assert.Equal(t, "100", ScoreText(1))
	assert.Equal(t, "87", ScoreText(87))
	assert.Equal(t, "0", ScoreText(0))
	assert.Equal(t, "50", ScoreText(0.5))
	assert.Equal(t, "2", ScoreText(1.5), "values above 1 are already on the 0-100 scale")
}

func TestTabRegions(t *testing.T) {
	doc := Render(source.DemoResult())

	assert.Len(t, doc.TabRegions(""), 5)
	for _, tab := range domain.Tabs {
		regions := doc.TabRegions(tab)
		assert.Len(t, regions, 5, string(tab))
	}
}
