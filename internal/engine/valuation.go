package engine

import (
	"fmt"
	"math"
	"sort"

	"CorpFin360/internal/domain/models"
)

const relativeWidthEpsilon = 1e-9

// AggregateOptions tune the valuation ensemble.
type AggregateOptions struct {
	ConfidenceLevel float64  // must lie in (0,1); 0 means default 0.95
	Benchmark       *float64 // held-out validation value, picks the closest model
	BestModel       string   // fallback representative when no benchmark given
}

// AggregateValuation combines per-model estimates into a point estimate with
// a confidence interval. The representative model is the one closest to the
// benchmark when provided, otherwise the configured best model, otherwise the
// ensemble mean.
func AggregateValuation(predictions map[string]float64, company models.NormalizedCompany, opts AggregateOptions) (models.ValuationResult, error) {
	level := opts.ConfidenceLevel
	if level == 0 {
		level = 0.95
	}
	if level <= 0 || level >= 1 || math.IsNaN(level) {
		return models.ValuationResult{}, NewErrorf(ErrInvalidConfidenceLevel, "confidence level %v must lie in (0,1)", opts.ConfidenceLevel)
	}
	if len(predictions) == 0 {
		return models.ValuationResult{}, NewError(ErrMissingScore, "valuation ensemble is empty")
	}
	for name, v := range predictions {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.ValuationResult{}, NewErrorf(ErrMissingScore, "model %s returned no usable valuation", name)
		}
	}

	mean, std := ensembleStats(predictions)

	point := mean
	best := opts.BestModel
	if opts.Benchmark != nil {
		best = closestModel(predictions, *opts.Benchmark)
	}
	if v, ok := predictions[best]; ok {
		point = v
	} else {
		best = ""
	}

	z := math.Sqrt2 * math.Erfinv(level)
	lower := point - z*std
	upper := point + z*std
	if lower < 0 {
		lower = 0
	}

	var insights []models.Insight
	if lower > point || upper < point {
		if lower > point {
			lower = point
		}
		if upper < point {
			upper = point
		}
		insights = append(insights, models.Insight{
			Type:    models.InsightWarning,
			Message: "Confidence interval was adjusted to contain the point estimate",
		})
	}

	if (upper-lower)/math.Max(lower, relativeWidthEpsilon) > 0.5 {
		insights = append(insights, models.Insight{
			Type:    models.InsightWarning,
			Message: "High uncertainty: valuation models disagree significantly",
		})
	}
	if g := company.RevenueGrowth; g != nil && *g > 0.2 {
		insights = append(insights, models.Insight{
			Type:    models.InsightPositive,
			Message: "Strong revenue growth supports a premium valuation",
		})
	}
	if m := company.ProfitMargin; m.Defined() && m.Value() > 0.2 {
		insights = append(insights, models.Insight{
			Type:    models.InsightPositive,
			Message: "High profit margin indicates efficient operations",
		})
	}

	return models.ValuationResult{
		PointEstimate: point,
		ConfidenceInterval: models.ConfidenceInterval{
			Lower:           lower,
			Upper:           upper,
			ConfidenceLevel: level,
		},
		EnsembleMean: mean,
		EnsembleStd:  std,
		BestModel:    best,
		Methodology:  methodology(company),
		Insights:     insights,
	}, nil
}

// ensembleStats returns the mean and sample standard deviation (n-1 divisor)
// of the model outputs. A single-model ensemble has zero deviation.
func ensembleStats(predictions map[string]float64) (mean, std float64) {
	n := float64(len(predictions))
	for _, v := range predictions {
		mean += v
	}
	mean /= n
	if n < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range predictions {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / (n - 1))
}

// closestModel picks the model whose output is nearest the benchmark. Names
// are visited in sorted order so ties resolve deterministically.
func closestModel(predictions map[string]float64, benchmark float64) string {
	names := make([]string, 0, len(predictions))
	for name := range predictions {
		names = append(names, name)
	}
	sort.Strings(names)

	best := names[0]
	bestDist := math.Abs(predictions[best] - benchmark)
	for _, name := range names[1:] {
		if d := math.Abs(predictions[name] - benchmark); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// methodology explains the inputs that shaped the estimate, one line per
// contributing signal.
func methodology(c models.NormalizedCompany) []string {
	lines := []string{"Ensemble of regression models over normalized fundamentals"}
	if c.Revenue != nil {
		lines = append(lines, fmt.Sprintf("Revenue base: %.0f", *c.Revenue))
	}
	if c.NetIncome != nil {
		lines = append(lines, fmt.Sprintf("Net income base: %.0f", *c.NetIncome))
	}
	if g := c.RevenueGrowth; g != nil {
		switch {
		case *g > 0.1:
			lines = append(lines, "Growth premium applied for revenue growth above 10%")
		case *g < 0:
			lines = append(lines, "Growth discount applied for declining revenue")
		}
	}
	if d := c.DebtToAssetRatio; d.Defined() && d.Value() > 0.5 {
		lines = append(lines, "Leverage discount applied for elevated debt load")
	}
	return lines
}
