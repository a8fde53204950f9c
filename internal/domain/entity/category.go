package entity

import "strings"

// Canonical category slugs. Filter chips, the posting wizard and saved
// searches all reference these; no free-form category strings are stored.
const (
	CategoryMotors      = "motors"
	CategoryProperty    = "property"
	CategoryJobs        = "jobs"
	CategoryElectronics = "electronics"
	CategoryFurniture   = "furniture"
	CategoryFashion     = "fashion"
)

var Categories = []string{
	CategoryMotors,
	CategoryProperty,
	CategoryJobs,
	CategoryElectronics,
	CategoryFurniture,
	CategoryFashion,
}

// NormalizeCategory maps a raw category value to its canonical slug,
// returning false for anything outside the known set.
func NormalizeCategory(raw string) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range Categories {
		if c == slug {
			return c, true
		}
	}
	return "", false
}
