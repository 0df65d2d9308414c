package source

import "github.com/ignite/campaign-insights/internal/domain"

// DemoResult is the fixed payload served by the static source. Scores
// that are on a 0-100 scale (overall, brand consistency) are kept that way;
// the renderer accepts both scales.
func DemoResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		CampaignName:   "Summer Product Launch 2025",
		OverallScore:   87,
		ProcessingTime: "1.7s",
		KeyRecommendations: []string{
			"Prioritize tech-savvy professionals segment with 35% budget reallocation based on superior conversion metrics",
			"Implement A/B testing framework for headline variations emphasizing time-saving benefits",
			"Monitor competitive response to recent market entrant pricing strategy within 48-hour window",
			"Capitalize on micro-influencer partnerships within next 14-day optimal engagement period",
			"Optimize campaign scheduling for peak engagement windows (Tuesday-Thursday, 7-9 PM)",
		},
		AudienceInsights: domain.AudienceInsights{
			PrimaryDemographics: domain.NewFacts(
				domain.FactPair{Label: "Age Range", Text: "25-40 years (core segment)"},
				domain.FactPair{Label: "Income Level", Text: "$75,000-$150,000 annually"},
				domain.FactPair{Label: "Education", Text: "Bachelor's degree or higher (89%)"},
				domain.FactPair{Label: "Location", Text: "Urban and suburban markets"},
				domain.FactPair{Label: "Device Usage", Text: "Mobile-first (78% of interactions)"},
			),
			BehavioralPatterns: []string{
				"Peak mobile engagement during commute hours (7-9 AM, 5-7 PM) with 67% higher CTR",
				"Weekday engagement outperforms weekends (73/27 split)",
				"Video content generates 3.4x higher engagement vs static imagery",
				"Multi-platform journey with average 4.2 touchpoints before conversion",
				"Research-driven decisions - 72% consult reviews before action",
			},
			EngagementTrends: []string{
				"37% increase in evening engagement rates during Q3 2024",
				"Video completion rates 28% above industry benchmark (74% vs 58%)",
				"Social proof elements increase click-through rates by 22%",
				"Personalized messaging improves conversion rates by 31%",
			},
			ExpansionOpportunities: []string{
				"Similar audience on TikTok shows 48% overlap potential with 2.3x lower CPM",
				"Lookalike modeling in adjacent metros (Atlanta, Denver, Austin)",
				"Cross-platform retargeting could yield 67% efficiency gain",
				"Strategic partnerships with productivity software brands",
			},
			RetentionInsights: []string{
				"Loyalty program members have 2.3x higher LTV",
				"Social media followers convert 40% more than cold traffic",
			},
		},
		CreativePerformance: domain.CreativePerformance{
			CreativeElementsAnalysis: []string{
				"User-generated content performs 3x better than stock photos",
				"Videos under 15 seconds have highest completion rates",
			},
			PerformancePredictions: []string{
				"Predicted CTR: 3.1-3.7% (industry average: 2.4%, confidence: 94%)",
				"Estimated conversion rate: 4.8-6.2% based on historical campaigns",
				"Video completion rate forecast: 74-81% for 15-30 second format",
				"Engagement rate projection: 6.8-8.1% across creative variations",
			},
			OptimizationRecommendations: []string{
				"Implement dynamic product ads with real-time inventory for 23% lift",
				"Deploy urgency elements with countdown timers (18% CTR improvement)",
				"Optimize creative refresh cycle to 21-day intervals",
				"A/B test carousel vs single image (carousel +15% engagement)",
			},
			EmotionalResonance: domain.NewScores(
				domain.ScorePair{Label: "excitement", Value: 0.78},
				domain.ScorePair{Label: "trust", Value: 0.85},
				domain.ScorePair{Label: "urgency", Value: 0.62},
				domain.ScorePair{Label: "aspiration", Value: 0.73},
				domain.ScorePair{Label: "security", Value: 0.69},
			),
			BrandConsistencyScore: 87,
		},
		CompetitiveIntelligence: domain.CompetitiveIntelligence{
			CompetitorActivities: []string{
				"Competitor A increased ad spend by 40% in past 30 days",
				"New market entrant launching aggressive pricing campaign",
				"Major competitor shifting 60% budget from Google to Meta",
				"Industry leader testing influencer partnerships with 50+ micro-influencers",
			},
			MarketThreats: []string{
				"Price war risk: 2 competitors reduced pricing by 15-20%",
				"Market saturation in primary demographic (65% reached)",
				"Economic headwinds affecting purchasing decisions",
				"New regulatory requirements increasing compliance costs",
			},
			ResponseStrategies: []string{
				"Emphasize unique value proposition and premium positioning",
				"Diversify to underutilized platforms (TikTok, Pinterest)",
				"Accelerate customer retention and loyalty programs",
				"Focus on customer experience excellence as differentiator",
			},
			MarketOpportunities: []string{
				"Competitor gap in video marketing (only 20% using effectively)",
				"Underserved 35-45 demographic with high purchasing power",
				"Emerging platform opportunities with low competition",
				"Geographic expansion in secondary markets",
			},
			CompetitiveAdvantage: []string{
				"Superior customer service ratings (4.8/5 vs industry 4.1/5)",
				"Faster product delivery (24hrs vs industry 3-5 days)",
			},
		},
		TrendAnalysis: domain.TrendAnalysis{
			EmergingTrends: []string{
				"Micro-influencer partnerships gaining 300% more engagement",
				"Interactive content driving 45% higher engagement rates",
				"Sustainability messaging resonating with 67% of audience",
				"AI-powered personalization increasing relevance by 28%",
			},
			SeasonalPatterns: []string{
				"Q4 budget allocation typically 35% higher than Q1-Q3",
				"Back-to-school period shows 28% engagement spike",
				"Holiday season requires 6-week advance setup",
				"Summer months see 15% decline in B2B engagement",
			},
			ViralPotential: domain.NewScores(
				domain.ScorePair{Label: "video_content", Value: 0.73},
				domain.ScorePair{Label: "user_generated_content", Value: 0.68},
				domain.ScorePair{Label: "trending_hashtags", Value: 0.45},
				domain.ScorePair{Label: "influencer_collaboration", Value: 0.62},
			),
			TimingRecommendations: []string{
				"Launch primary campaign Tuesday-Thursday for maximum reach",
				"Schedule posts 1-3 PM for optimal engagement",
				"Avoid major sporting events for launch dates",
				"Plan refresh every 3-4 weeks to combat ad fatigue",
			},
			CulturalInsights: []string{
				"Remote work culture driving increased online purchasing",
				"Environmental consciousness influencing brand choice (73% factor)",
			},
		},
	}
}
