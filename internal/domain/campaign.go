package domain

import (
	"math"
	"strconv"
	"strings"
)

// CampaignForm is a validated campaign description, the request body of an
// analysis. JSON names follow the analysis service wire format.
type CampaignForm struct {
	CampaignName   string   `json:"campaign_name" yaml:"campaign_name"`
	Platform       string   `json:"platform" yaml:"platform"`
	Budget         float64  `json:"budget" yaml:"budget"`
	TargetAudience string   `json:"target_audience" yaml:"target_audience"`
	Industry       string   `json:"industry" yaml:"industry"`
	Objectives     []string `json:"campaign_objectives" yaml:"campaign_objectives"`
}

// RawForm is the form exactly as the user typed it. Budget is still text.
type RawForm struct {
	CampaignName   string   `json:"campaign_name"`
	Platform       string   `json:"platform"`
	Budget         string   `json:"budget"`
	TargetAudience string   `json:"target_audience"`
	Industry       string   `json:"industry"`
	Objectives     []string `json:"campaign_objectives"`
}

// Form field names, in the order they are checked.
const (
	FieldCampaignName   = "campaign_name"
	FieldPlatform       = "platform"
	FieldBudget         = "budget"
	FieldTargetAudience = "target_audience"
	FieldIndustry       = "industry"
	FieldObjectives     = "campaign_objectives"
)

// Parse trims and validates the raw form. The first failing field is
// reported as a *ValidationError.
func (r RawForm) Parse() (CampaignForm, error) {
	f := CampaignForm{
		CampaignName:   strings.TrimSpace(r.CampaignName),
		Platform:       strings.TrimSpace(r.Platform),
		TargetAudience: strings.TrimSpace(r.TargetAudience),
		Industry:       strings.TrimSpace(r.Industry),
		Objectives:     normalizeObjectives(r.Objectives),
	}

	if err := requireText(FieldCampaignName, f.CampaignName); err != nil {
		return CampaignForm{}, err
	}
	if err := requireText(FieldPlatform, f.Platform); err != nil {
		return CampaignForm{}, err
	}

	budgetText := strings.TrimSpace(r.Budget)
	if budgetText == "" {
		return CampaignForm{}, &ValidationError{Field: FieldBudget, Reason: "is required"}
	}
	budget, err := strconv.ParseFloat(budgetText, 64)
	if err != nil {
		return CampaignForm{}, &ValidationError{Field: FieldBudget, Reason: "must be a number"}
	}
	f.Budget = budget

	if err := f.Validate(); err != nil {
		return CampaignForm{}, err
	}
	return f, nil
}

// Validate checks an already-typed form: every text field non-empty, a
// positive finite budget and at least one objective.
func (f CampaignForm) Validate() error {
	if err := requireText(FieldCampaignName, f.CampaignName); err != nil {
		return err
	}
	if err := requireText(FieldPlatform, f.Platform); err != nil {
		return err
	}
	if math.IsNaN(f.Budget) || math.IsInf(f.Budget, 0) || f.Budget <= 0 {
		return &ValidationError{Field: FieldBudget, Reason: "must be a positive number"}
	}
	if err := requireText(FieldTargetAudience, f.TargetAudience); err != nil {
		return err
	}
	if err := requireText(FieldIndustry, f.Industry); err != nil {
		return err
	}
	if len(normalizeObjectives(f.Objectives)) == 0 {
		return &ValidationError{Field: FieldObjectives, Reason: "must include at least one objective"}
	}
	return nil
}

// Raw converts a form back to its editable representation, e.g. to
// prefill the form with a sample campaign.
func (f CampaignForm) Raw() RawForm {
	return RawForm{
		CampaignName:   f.CampaignName,
		Platform:       f.Platform,
		Budget:         strconv.FormatFloat(f.Budget, 'f', -1, 64),
		TargetAudience: f.TargetAudience,
		Industry:       f.Industry,
		Objectives:     append([]string(nil), f.Objectives...),
	}
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// normalizeObjectives trims entries, drops blanks and duplicates, keeping
// first-seen order. Objectives are a set.
func normalizeObjectives(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, o := range in {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
