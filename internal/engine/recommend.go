package engine

import "CorpFin360/internal/domain/models"

// RuleInput is everything a recommendation rule may inspect. Rules are pure;
// the same input always produces the same recommendation or none.
type RuleInput struct {
	Health      models.HealthCategory
	HealthScore float64
	Risk        models.RiskCategory
	RiskScore   float64
	Company     models.NormalizedCompany
}

// Rule is one independent predicate/action pair. Apply returns nil when the
// rule does not fire. Rules never read each other's output.
type Rule struct {
	Name  string
	Apply func(in RuleInput) *models.Recommendation
}

// healthRules is the fixed evaluation order for company assessments. New
// rules append here without touching existing ones.
var healthRules = []Rule{
	{
		Name: "critical_health",
		Apply: func(in RuleInput) *models.Recommendation {
			if in.Health != models.HealthCritical && in.Health != models.HealthPoor {
				return nil
			}
			return &models.Recommendation{
				Category:    "Financial Health",
				Action:      "Implement cost reduction measures",
				Priority:    models.PriorityHigh,
				Description: "Overall financial health is weak; reduce operating costs and preserve cash.",
			}
		},
	},
	{
		Name: "elevated_risk",
		Apply: func(in RuleInput) *models.Recommendation {
			if in.Risk != models.RiskHigh && in.Risk != models.RiskCritical {
				return nil
			}
			return &models.Recommendation{
				Category:    "Risk Management",
				Action:      "Reduce exposure to leverage and volatile revenue streams",
				Priority:    models.PriorityHigh,
				Description: "Risk score is elevated; deleverage and diversify before expanding.",
			}
		},
	},
	{
		Name: "thin_margin",
		Apply: func(in RuleInput) *models.Recommendation {
			m := in.Company.ProfitMargin
			if !m.Defined() || m.Value() >= 0.05 {
				return nil
			}
			return &models.Recommendation{
				Category:    "Profitability",
				Action:      "Improve profit margins",
				Priority:    models.PriorityMedium,
				Description: "Profit margin is below 5%; review pricing and cost structure.",
			}
		},
	},
	{
		Name: "high_leverage",
		Apply: func(in RuleInput) *models.Recommendation {
			d := in.Company.DebtToAssetRatio
			if !d.Defined() || d.Value() <= 0.7 {
				return nil
			}
			return &models.Recommendation{
				Category:    "Leverage",
				Action:      "Pay down debt",
				Priority:    models.PriorityMedium,
				Description: "Liabilities exceed 70% of assets; prioritize debt reduction.",
			}
		},
	},
	{
		Name: "weak_liquidity",
		Apply: func(in RuleInput) *models.Recommendation {
			c := in.Company.CurrentRatio
			if !c.Defined() || c.Value() >= 1.0 {
				return nil
			}
			return &models.Recommendation{
				Category:    "Liquidity",
				Action:      "Shore up working capital",
				Priority:    models.PriorityMedium,
				Description: "Current liabilities exceed current assets; secure short-term funding.",
			}
		},
	},
	{
		Name: "declining_revenue",
		Apply: func(in RuleInput) *models.Recommendation {
			g := in.Company.RevenueGrowth
			if g == nil || *g >= 0 {
				return nil
			}
			return &models.Recommendation{
				Category:    "Revenue",
				Action:      "Address declining revenue",
				Priority:    models.PriorityMedium,
				Description: "Revenue is shrinking year over year; revisit product and market fit.",
			}
		},
	},
	{
		Name: "borderline_growth",
		Apply: func(in RuleInput) *models.Recommendation {
			if in.Health != models.HealthGood {
				return nil
			}
			return &models.Recommendation{
				Category:    "Growth",
				Action:      "Focus on growth initiatives",
				Priority:    models.PriorityMedium,
				Description: "Fundamentals are solid but not excellent; invest in growth to move up a tier.",
			}
		},
	},
	{
		Name: "maintain_course",
		Apply: func(in RuleInput) *models.Recommendation {
			if in.Health != models.HealthExcellent || in.Risk != models.RiskLow {
				return nil
			}
			return &models.Recommendation{
				Category:    "Strategy",
				Action:      "Maintain current strategy",
				Priority:    models.PriorityLow,
				Description: "Health is excellent with low risk; no corrective action required.",
			}
		},
	},
}

// Synthesize evaluates the rule list in order and returns the fired
// recommendations. The result is never empty; when nothing fires a neutral
// monitoring entry is returned.
func Synthesize(in RuleInput) []models.Recommendation {
	return applyRules(healthRules, in)
}

func applyRules(rules []Rule, in RuleInput) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(rules))
	for _, r := range rules {
		if rec := r.Apply(in); rec != nil {
			recs = append(recs, *rec)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, models.Recommendation{
			Category:    "General",
			Action:      "Continue monitoring key financial metrics",
			Priority:    models.PriorityLow,
			Description: "No rule triggered; keep tracking the core ratios.",
		})
	}
	return recs
}
