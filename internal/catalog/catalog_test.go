package catalog

import "testing"

func TestCatalogLoaded(t *testing.T) {
	items := Items()
	if len(items) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	for _, it := range items {
		if it.Name == "" {
			t.Error("item with empty name")
		}
		if it.Cost <= 0 {
			t.Errorf("item %q has non-positive cost %v", it.Name, it.Cost)
		}
		if !it.Category.IsValid() {
			t.Errorf("item %q has invalid category %q", it.Name, it.Category)
		}
	}
}

func TestEveryCategoryPopulated(t *testing.T) {
	for _, cat := range []Category{
		CategoryDaily, CategoryLuxury,
		CategoryTesla, CategoryHousing, CategoryExtraLuxury,
	} {
		if len(ItemsByCategory(cat)) == 0 {
			t.Errorf("category %q has no items", cat)
		}
	}
}

func TestBusinessCategoryIsEmptyLegacyTier(t *testing.T) {
	// "business" permanece como categoria válida sem itens cadastrados;
	// as comparações apenas não emitem nada para ela.
	if !CategoryBusiness.IsValid() {
		t.Error("business category should remain valid")
	}
	if got := ItemsByCategory(CategoryBusiness); len(got) != 0 {
		t.Errorf("business category should have no items, got %d", len(got))
	}
}

func TestItemsByCategoryFilters(t *testing.T) {
	for _, it := range ItemsByCategory(CategoryTesla) {
		if it.Category != CategoryTesla {
			t.Errorf("item %q leaked into tesla category", it.Name)
		}
	}
}

func TestCategoryIsValid(t *testing.T) {
	if Category("groceries").IsValid() {
		t.Error("unknown category reported valid")
	}
	if !CategoryDaily.IsValid() {
		t.Error("daily category reported invalid")
	}
}

func TestBenchmarks(t *testing.T) {
	b := DefaultBenchmarks()
	if b.MeetingTaxGood <= 0 || b.MeetingTaxBad <= b.MeetingTaxGood {
		t.Errorf("benchmark thresholds out of order: %+v", b)
	}
	if b.EfficiencyScoreGood <= 0 || b.EfficiencyScoreGood > 100 {
		t.Errorf("efficiency benchmark out of range: %d", b.EfficiencyScoreGood)
	}
}

func TestCurrencies(t *testing.T) {
	currencies := Currencies()
	if len(currencies) == 0 {
		t.Fatal("no currencies configured")
	}

	seen := make(map[string]bool)
	for _, c := range currencies {
		if c.Code == "" || c.Symbol == "" {
			t.Errorf("incomplete currency: %+v", c)
		}
		if seen[c.Code] {
			t.Errorf("duplicate currency code %q", c.Code)
		}
		seen[c.Code] = true
	}
}
