// Package catalog serves the static product reference data: packages,
// coverage tiers, and add-on options. It is read-only and has no state; two
// calls always return structurally identical results.
package catalog

// Package describes one purchasable insurance package.
type Package struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// CoverageOption is one coverage amount tier.
type CoverageOption struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

// AdditionalOption is one optional supplementary coverage item.
type AdditionalOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Catalog bundles the three reference sequences returned to callers.
type Catalog struct {
	Packages          []Package          `json:"packages"`
	CoverageOptions   []CoverageOption   `json:"coverage_options"`
	AdditionalOptions []AdditionalOption `json:"additional_options"`
}

// Get returns the product catalog. Callers receive fresh slices so mutation
// cannot leak between requests.
func Get() Catalog {
	return Catalog{
		Packages: []Package{
			{ID: "basic", Name: "Basic Coverage", Price: 29.99, Description: "Essential coverage for individuals"},
			{ID: "standard", Name: "Standard Coverage", Price: 49.99, Description: "Comprehensive coverage with additional benefits"},
			{ID: "premium", Name: "Premium Coverage", Price: 79.99, Description: "Complete coverage with premium benefits and priority service"},
		},
		CoverageOptions: []CoverageOption{
			{ID: "coverage_50k", Amount: "$50,000"},
			{ID: "coverage_100k", Amount: "$100,000"},
			{ID: "coverage_250k", Amount: "$250,000"},
			{ID: "coverage_500k", Amount: "$500,000"},
			{ID: "coverage_1m", Amount: "$1,000,000"},
		},
		AdditionalOptions: []AdditionalOption{
			{ID: "critical_illness", Name: "Critical Illness Cover", Price: 15},
			{ID: "disability", Name: "Disability Cover", Price: 12},
			{ID: "funeral", Name: "Funeral Cover", Price: 8},
			{ID: "income_protection", Name: "Income Protection", Price: 20},
		},
	}
}
