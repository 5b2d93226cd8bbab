// Package catalog holds the static reference data used by the comparison
// engine: the "Pay For X" item catalog, benchmark thresholds and supported
// display currencies. The data ships embedded in the binary as YAML and is
// parsed once at package init; it is never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Category tags a comparison item by relatability and cost tier. The set is
// closed: engine logic branches on fixed category names.
type Category string

const (
	// CategoryDaily covers everyday relatable items ($5-$1000)
	CategoryDaily Category = "daily"
	// CategoryLuxury covers consumer tech and luxury goods ($250-$3000)
	CategoryLuxury Category = "luxury"
	// CategoryBusiness is a legacy tier kept for the reduced comparison set
	CategoryBusiness Category = "business"
	// CategoryTesla covers Tesla vehicles used as price anchors ($39k-$250k)
	CategoryTesla Category = "tesla"
	// CategoryHousing covers real estate comparisons ($83k-$1.5M)
	CategoryHousing Category = "housing"
	// CategoryExtraLuxury covers high-end items for large totals ($10k-$285k)
	CategoryExtraLuxury Category = "extra-luxury"
)

// IsValid reports whether c belongs to the closed category set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDaily, CategoryLuxury, CategoryBusiness, CategoryTesla,
		CategoryHousing, CategoryExtraLuxury:
		return true
	}
	return false
}

// Item is one reference purchase used to contextualize meeting costs
// ("your meetings cost as much as 14 coffees").
type Item struct {
	Name     string   `yaml:"name" json:"name"`
	Cost     float64  `yaml:"cost" json:"cost"`
	Icon     string   `yaml:"icon" json:"icon"`
	Category Category `yaml:"category" json:"category"`
}

// Benchmarks are the named thresholds used for display banding.
type Benchmarks struct {
	// Organizations spending under this % of payroll on meetings are
	// considered efficient.
	MeetingTaxGood float64 `yaml:"meeting_tax_good" json:"meeting_tax_good"`
	// Above this % the meeting culture deserves a hard look.
	MeetingTaxBad float64 `yaml:"meeting_tax_bad" json:"meeting_tax_bad"`
	// Efficiency scores above this indicate well-structured meetings.
	EfficiencyScoreGood int `yaml:"efficiency_score_good" json:"efficiency_score_good"`
}

// Currency is a supported display currency.
type Currency struct {
	Code   string `yaml:"code" json:"code"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

type document struct {
	Benchmarks Benchmarks `yaml:"benchmarks"`
	Currencies []Currency `yaml:"currencies"`
	Items      []Item     `yaml:"items"`
}

var loaded document

func init() {
	if err := yaml.Unmarshal(rawCatalog, &loaded); err != nil {
		panic(fmt.Sprintf("catalog: parse embedded catalog.yaml: %v", err))
	}
	for _, it := range loaded.Items {
		if !it.Category.IsValid() {
			panic(fmt.Sprintf("catalog: item %q has unknown category %q", it.Name, it.Category))
		}
		if it.Cost <= 0 {
			panic(fmt.Sprintf("catalog: item %q has non-positive cost", it.Name))
		}
	}
}

// Items returns the full comparison catalog. The returned slice is shared;
// callers must not modify it.
func Items() []Item {
	return loaded.Items
}

// ItemsByCategory returns the catalog items tagged with cat, in catalog order.
func ItemsByCategory(cat Category) []Item {
	var out []Item
	for _, it := range loaded.Items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// DefaultBenchmarks returns the benchmark thresholds.
func DefaultBenchmarks() Benchmarks {
	return loaded.Benchmarks
}

// Currencies returns the supported display currencies.
func Currencies() []Currency {
	return loaded.Currencies
}
