package models

import "testing"

func TestMetricAccessors(t *testing.T) {
	cases := []struct {
		name    string
		m       Metric
		value   float64
		defined bool
	}{
		{"defined", DefinedMetric(0.42), 0.42, true},
		{"undefined", UndefinedMetric(), 0, false},
		{"defined zero", DefinedMetric(0), 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.m.Value(); got != c.value {
				t.Fatalf("Value() = %v, want %v", got, c.value)
			}
			if got := c.m.Defined(); got != c.defined {
				t.Fatalf("Defined() = %v, want %v", got, c.defined)
			}
		})
	}
}
