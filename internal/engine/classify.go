package engine

import (
	"math"

	"CorpFin360/internal/domain/models"
)

// neutralBand is the |momentum| region classified as Neutral.
const neutralBand = 0.05

// ClassifyHealth maps a 0-100 health score to its category. Out-of-range
// scores are clamped first; NaN is rejected.
func ClassifyHealth(score float64) (models.HealthCategory, error) {
	if math.IsNaN(score) {
		return "", NewError(ErrMissingScore, "health score is undefined")
	}
	s := clamp(score, 0, 100)
	switch {
	case s >= 80:
		return models.HealthExcellent, nil
	case s >= 60:
		return models.HealthGood, nil
	case s >= 40:
		return models.HealthFair, nil
	case s >= 20:
		return models.HealthPoor, nil
	default:
		return models.HealthCritical, nil
	}
}

// ClassifyRisk maps a 0-100 risk score to its category.
func ClassifyRisk(score float64) (models.RiskCategory, error) {
	if math.IsNaN(score) {
		return "", NewError(ErrMissingScore, "risk score is undefined")
	}
	s := clamp(score, 0, 100)
	switch {
	case s >= 80:
		return models.RiskCritical, nil
	case s >= 60:
		return models.RiskHigh, nil
	case s >= 30:
		return models.RiskMedium, nil
	default:
		return models.RiskLow, nil
	}
}

// ClassifyTrend maps a normalized momentum score to a direction with an
// attached confidence. Momentum within the neutral band is Neutral.
func ClassifyTrend(momentum float64) (models.TrendDirection, float64, error) {
	if math.IsNaN(momentum) {
		return "", 0, NewError(ErrMissingScore, "momentum score is undefined")
	}
	switch {
	case momentum > neutralBand:
		return models.TrendBullish, 0.8, nil
	case momentum < -neutralBand:
		return models.TrendBearish, 0.8, nil
	default:
		return models.TrendNeutral, 0.6, nil
	}
}

// ClassifyVolatility buckets an annualized volatility into a risk level.
func ClassifyVolatility(vol float64) string {
	switch {
	case vol < 0.1:
		return "Low"
	case vol < 0.25:
		return "Moderate"
	case vol < 0.5:
		return "High"
	default:
		return "Extreme"
	}
}

// ClassifySentiment buckets a sentiment score in [-1, 1].
func ClassifySentiment(score float64) string {
	switch {
	case score > 0.6:
		return "Very Positive"
	case score > 0.3:
		return "Positive"
	case score > -0.3:
		return "Neutral"
	case score > -0.6:
		return "Negative"
	default:
		return "Very Negative"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
