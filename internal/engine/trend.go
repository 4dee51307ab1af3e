package engine

import (
	"math"

	"CorpFin360/internal/domain/models"
)

// TrendRuleInput is what a market recommendation rule may inspect.
type TrendRuleInput struct {
	Direction  models.TrendDirection
	Confidence float64
	MaxRisk    string // highest volatility level across the horizon
	Sentiment  *float64
}

// TrendRule mirrors Rule for market analyses.
type TrendRule struct {
	Name  string
	Apply func(in TrendRuleInput) *models.Recommendation
}

var trendRules = []TrendRule{
	{
		Name: "bullish_momentum",
		Apply: func(in TrendRuleInput) *models.Recommendation {
			if in.Direction != models.TrendBullish || in.Confidence < 0.7 {
				return nil
			}
			return &models.Recommendation{
				Category:    "Market Position",
				Action:      "Consider increasing market exposure",
				Priority:    models.PriorityMedium,
				Description: "Forecast momentum is positive with reasonable confidence.",
			}
		},
	},
	{
		Name: "bearish_momentum",
		Apply: func(in TrendRuleInput) *models.Recommendation {
			if in.Direction != models.TrendBearish {
				return nil
			}
			return &models.Recommendation{
				Category:    "Market Position",
				Action:      "Consider defensive positioning",
				Priority:    models.PriorityMedium,
				Description: "Forecast momentum is negative; reduce cyclical exposure.",
			}
		},
	},
	{
		Name: "volatility_hedge",
		Apply: func(in TrendRuleInput) *models.Recommendation {
			if in.MaxRisk != "High" && in.MaxRisk != "Extreme" {
				return nil
			}
			return &models.Recommendation{
				Category:    "Risk Management",
				Action:      "Hedge against elevated volatility",
				Priority:    models.PriorityHigh,
				Description: "Forecast volatility reaches " + in.MaxRisk + " levels over the horizon.",
			}
		},
	},
	{
		Name: "negative_sentiment",
		Apply: func(in TrendRuleInput) *models.Recommendation {
			if in.Sentiment == nil || *in.Sentiment > -0.3 {
				return nil
			}
			return &models.Recommendation{
				Category:    "Sentiment",
				Action:      "Monitor news flow closely",
				Priority:    models.PriorityMedium,
				Description: "News sentiment is negative; expect headline-driven swings.",
			}
		},
	},
}

// BuildTrend turns raw price/volatility forecasts into a classified trend
// analysis. Momentum is the relative move of the final predicted price
// against the current price (or the first prediction when no snapshot price
// is available).
func BuildTrend(scores models.TrendScores, snapshot *models.MarketSnapshot) (models.TrendAnalysis, error) {
	if len(scores.Prices) == 0 {
		return models.TrendAnalysis{}, NewError(ErrMissingScore, "trend predictor returned no price forecast")
	}
	for _, p := range scores.Prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return models.TrendAnalysis{}, NewError(ErrMissingScore, "trend predictor returned an undefined price")
		}
	}
	for _, v := range scores.Volatilities {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.TrendAnalysis{}, NewError(ErrMissingScore, "trend predictor returned an undefined volatility")
		}
	}

	base := scores.Prices[0]
	if snapshot != nil && snapshot.CurrentPrice != nil && *snapshot.CurrentPrice > 0 {
		base = *snapshot.CurrentPrice
	}
	if base <= 0 {
		return models.TrendAnalysis{}, NewError(ErrMissingScore, "no usable base price for momentum")
	}
	momentum := (scores.Prices[len(scores.Prices)-1] - base) / base

	direction, confidence, err := ClassifyTrend(momentum)
	if err != nil {
		return models.TrendAnalysis{}, err
	}

	points := make([]models.PricePoint, len(scores.Prices))
	for i, p := range scores.Prices {
		c := confidence - 0.02*float64(i)
		if c < 0.3 {
			c = 0.3
		}
		points[i] = models.PricePoint{Step: i + 1, Price: p, Confidence: c}
	}

	volPoints := make([]models.VolatilityPoint, len(scores.Volatilities))
	maxRisk := ""
	maxVol := math.Inf(-1)
	for i, v := range scores.Volatilities {
		level := ClassifyVolatility(v)
		volPoints[i] = models.VolatilityPoint{Step: i + 1, Volatility: v, RiskLevel: level}
		if v > maxVol {
			maxVol, maxRisk = v, level
		}
	}

	out := models.TrendAnalysis{
		PricePredictions:      points,
		VolatilityPredictions: volPoints,
		TrendDirection:        direction,
		ConfidenceScore:       confidence,
		KeyFactors:            keyFactors(snapshot),
	}
	if scores.Sentiment != nil {
		out.SentimentScore = scores.Sentiment
		out.SentimentCategory = ClassifySentiment(*scores.Sentiment)
	}
	out.Recommendations = applyTrendRules(TrendRuleInput{
		Direction:  direction,
		Confidence: confidence,
		MaxRisk:    maxRisk,
		Sentiment:  scores.Sentiment,
	})
	return out, nil
}

func applyTrendRules(in TrendRuleInput) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(trendRules))
	for _, r := range trendRules {
		if rec := r.Apply(in); rec != nil {
			recs = append(recs, *rec)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, models.Recommendation{
			Category:    "General",
			Action:      "Continue monitoring market conditions",
			Priority:    models.PriorityLow,
			Description: "No directional signal; keep watching momentum and volatility.",
		})
	}
	return recs
}

// keyFactors lists notable technical and macro readings from the snapshot.
func keyFactors(s *models.MarketSnapshot) []string {
	if s == nil {
		return nil
	}
	var factors []string
	if s.RSI != nil {
		if *s.RSI > 70 {
			factors = append(factors, "RSI indicates overbought conditions")
		} else if *s.RSI < 30 {
			factors = append(factors, "RSI indicates oversold conditions")
		}
	}
	if s.VIX != nil {
		if *s.VIX > 30 {
			factors = append(factors, "VIX signals elevated market fear")
		} else if *s.VIX < 15 {
			factors = append(factors, "VIX signals market complacency")
		}
	}
	if s.FearGreedIndex != nil {
		if *s.FearGreedIndex < 25 {
			factors = append(factors, "Fear & Greed index shows extreme fear")
		} else if *s.FearGreedIndex > 75 {
			factors = append(factors, "Fear & Greed index shows extreme greed")
		}
	}
	if s.InterestRate != nil && *s.InterestRate > 5 {
		factors = append(factors, "High interest rate environment pressures valuations")
	}
	return factors
}
