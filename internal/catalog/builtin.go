package catalog

import "github.com/ignite/campaign-insights/internal/domain"

var builtinCampaigns = []domain.CampaignForm{
	{
		CampaignName:   "Summer Product Launch 2025",
		Platform:       "Meta Ads",
		Budget:         150000,
		TargetAudience: "Millennials and Gen Z professionals in technology sector, aged 25-40, income $75K+",
		Industry:       "Technology",
		Objectives:     []string{"Brand Awareness", "Lead Generation"},
	},
	{
		CampaignName:   "Holiday Sales Campaign",
		Platform:       "Google Ads",
		Budget:         250000,
		TargetAudience: "Families with children aged 5-15",
		Industry:       "E-commerce",
		Objectives:     []string{"Sales", "Customer Acquisition"},
	},
	{
		CampaignName:   "B2B SaaS Demo Campaign",
		Platform:       "LinkedIn Ads",
		Budget:         75000,
		TargetAudience: "C-suite executives and decision makers",
		Industry:       "Software",
		Objectives:     []string{"Lead Generation", "Demo Requests"},
	},
}
