package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"CorpFin360/internal/domain/models"
)

// significantGapRatio flags valuations that differ by more than this factor.
const significantGapRatio = 3.0

// Compare contrasts two or more analyzed entities. Entities whose own
// pipeline failed are reported individually and excluded from the
// comparison; at least two valid entities must remain.
func Compare(entities []models.ComparisonEntity) (models.ComparisonResult, error) {
	var valid []models.ComparisonEntity
	var failed []models.EntityFailure
	for _, e := range entities {
		if e.Err != nil {
			failed = append(failed, models.EntityFailure{Name: e.Name, Message: userMessage(e.Err)})
			continue
		}
		valid = append(valid, e)
	}
	if len(valid) < 2 {
		return models.ComparisonResult{}, NewErrorf(ErrInsufficientEntities,
			"comparison needs at least 2 valid entities, got %d", len(valid))
	}

	var similarities, differences []string
	var insights []models.Insight

	if line, same := compareCategories(valid, "financial health", func(e models.ComparisonEntity) string {
		if e.Health == nil {
			return ""
		}
		return string(e.Health.HealthCategory)
	}); line != "" {
		if same {
			similarities = append(similarities, line)
		} else {
			differences = append(differences, line)
		}
	}

	if line, same := compareCategories(valid, "risk", func(e models.ComparisonEntity) string {
		if e.Health == nil {
			return ""
		}
		return string(e.Health.RiskCategory)
	}); line != "" {
		if same {
			similarities = append(similarities, line)
		} else {
			differences = append(differences, line)
		}
	}

	minE, maxE, ok := valuationExtremes(valid)
	if ok {
		minV := minE.Valuation.PointEstimate
		maxV := maxE.Valuation.PointEstimate
		if minV > 0 && maxV/minV <= 1.5 {
			similarities = append(similarities, "Entities operate at a comparable valuation scale")
		} else {
			differences = append(differences, fmt.Sprintf(
				"Valuations range from %.0f (%s) to %.0f (%s)", minV, minE.Name, maxV, maxE.Name))
		}
		if minV > 0 && maxV/minV > significantGapRatio {
			insights = append(insights, models.Insight{
				Type: models.InsightWarning,
				Message: fmt.Sprintf("Significant valuation gap between %s and %s (%.1fx)",
					maxE.Name, minE.Name, maxV/minV),
			})
		}
	}

	return models.ComparisonResult{
		Similarities: similarities,
		Differences:  differences,
		Ranking:      rankByValuation(valid),
		Insights:     insights,
		Failed:       failed,
		Summary: fmt.Sprintf("Compared %d entities: %d similarities, %d differences",
			len(valid), len(similarities), len(differences)),
	}, nil
}

// compareCategories reports one similarity or difference line for a labeled
// categorical attribute. Entities missing the attribute are skipped; fewer
// than two readings yields no line.
func compareCategories(entities []models.ComparisonEntity, label string, get func(models.ComparisonEntity) string) (string, bool) {
	type reading struct{ name, value string }
	var readings []reading
	for _, e := range entities {
		if v := get(e); v != "" {
			readings = append(readings, reading{e.Name, v})
		}
	}
	if len(readings) < 2 {
		return "", false
	}
	same := true
	for _, r := range readings[1:] {
		if r.value != readings[0].value {
			same = false
			break
		}
	}
	if same {
		return fmt.Sprintf("All entities share a %s %s profile", readings[0].value, label), true
	}
	parts := make([]string, len(readings))
	for i, r := range readings {
		parts[i] = fmt.Sprintf("%s is %s", r.name, r.value)
	}
	return fmt.Sprintf("Entities differ in %s: %s", label, strings.Join(parts, ", ")), false
}

func valuationExtremes(entities []models.ComparisonEntity) (minE, maxE models.ComparisonEntity, ok bool) {
	for _, e := range entities {
		if e.Valuation == nil {
			continue
		}
		if !ok {
			minE, maxE, ok = e, e, true
			continue
		}
		if e.Valuation.PointEstimate < minE.Valuation.PointEstimate {
			minE = e
		}
		if e.Valuation.PointEstimate > maxE.Valuation.PointEstimate {
			maxE = e
		}
	}
	return minE, maxE, ok
}

// rankByValuation orders entity names by point estimate descending; entities
// without a valuation keep their input order at the tail.
func rankByValuation(entities []models.ComparisonEntity) []string {
	ranked := make([]models.ComparisonEntity, len(entities))
	copy(ranked, entities)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := ranked[i].Valuation, ranked[j].Valuation
		if vi == nil {
			return false
		}
		if vj == nil {
			return true
		}
		return vi.PointEstimate > vj.PointEstimate
	})
	names := make([]string, len(ranked))
	for i, e := range ranked {
		names[i] = e.Name
	}
	return names
}

// userMessage strips internal causes, keeping only the short message of an
// engine error.
func userMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "analysis failed"
}
