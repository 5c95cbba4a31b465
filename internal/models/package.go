package models

// ServicePackage is a named, priced, fixed-duration bundle of cleaning
// features offered for booking. Catalog data is immutable at runtime.
type ServicePackage struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Price       int      `yaml:"price" json:"price"` // whole dollars
	Duration    int      `yaml:"duration" json:"duration"` // minutes
	Features    []string `yaml:"features" json:"features"`
	Popular     bool     `yaml:"popular" json:"popular,omitempty"`
}

// DefaultPackages is the stock catalog used when the config does not
// override it.
func DefaultPackages() []ServicePackage {
	return []ServicePackage{
		{
			ID:          "basic",
			Name:        "Basic Wash",
			Description: "Exterior wash and dry",
			Price:       25,
			Duration:    30,
			Features:    []string{"Exterior wash", "Tire cleaning", "Window cleaning", "Quick dry"},
		},
		{
			ID:          "premium",
			Name:        "Premium Wash",
			Description: "Complete interior and exterior cleaning",
			Price:       45,
			Duration:    60,
			Features:    []string{"Everything in Basic", "Interior vacuum", "Dashboard cleaning", "Door panels", "Seat cleaning"},
			Popular:     true,
		},
		{
			ID:          "deluxe",
			Name:        "Deluxe Wash",
			Description: "Full service with wax and detailing",
			Price:       75,
			Duration:    90,
			Features:    []string{"Everything in Premium", "Wax application", "Tire shine", "Interior conditioning", "Air freshener"},
		},
	}
}
