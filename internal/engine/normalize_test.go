package engine

import (
	"math"
	"testing"

	"CorpFin360/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeCompanyDerivesRatios(t *testing.T) {
	n, err := NormalizeCompany(models.CompanyFinancials{
		Revenue:          f64(5_000_000),
		NetIncome:        f64(750_000),
		TotalAssets:      f64(8_000_000),
		TotalLiabilities: f64(3_000_000),
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !n.ProfitMargin.Defined() || math.Abs(n.ProfitMargin.Value()-0.15) > 1e-9 {
		t.Fatalf("profit margin %v", n.ProfitMargin)
	}
	if !n.DebtToAssetRatio.Defined() || math.Abs(n.DebtToAssetRatio.Value()-0.375) > 1e-9 {
		t.Fatalf("debt to asset %v", n.DebtToAssetRatio)
	}
	if n.CurrentRatio.Defined() {
		t.Fatalf("current ratio should be undefined without operands")
	}
}

func TestNormalizeCompanyZeroDivisor(t *testing.T) {
	n, err := NormalizeCompany(models.CompanyFinancials{
		Revenue:   f64(0),
		NetIncome: f64(100),
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if n.ProfitMargin.Defined() {
		t.Fatalf("profit margin should be undefined for zero revenue")
	}
}

func TestNormalizeCompanyIdempotent(t *testing.T) {
	in := models.CompanyFinancials{
		Revenue:            f64(1_000_000),
		NetIncome:          f64(200_000),
		TotalAssets:        f64(2_000_000),
		TotalLiabilities:   f64(500_000),
		CurrentAssets:      f64(800_000),
		CurrentLiabilities: f64(400_000),
	}
	first, err := NormalizeCompany(in)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := NormalizeCompany(first.CompanyFinancials)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if first.ProfitMargin != second.ProfitMargin ||
		first.DebtToAssetRatio != second.DebtToAssetRatio ||
		first.CurrentRatio != second.CurrentRatio {
		t.Fatalf("derived metrics changed between passes")
	}
}

func TestNormalizeCompanyRejectsNaN(t *testing.T) {
	_, err := NormalizeCompany(models.CompanyFinancials{Revenue: f64(math.NaN())})
	if KindOf(err) != ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
	_, err = NormalizeCompany(models.CompanyFinancials{
		Extensions: map[string]float64{"ev_ebitda": math.Inf(1)},
	})
	if KindOf(err) != ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestNormalizeCompanyKeepsExtensions(t *testing.T) {
	n, err := NormalizeCompany(models.CompanyFinancials{
		Extensions: map[string]float64{"ev_ebitda": 12.5},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if n.Extensions["ev_ebitda"] != 12.5 {
		t.Fatalf("extension dropped")
	}
}
