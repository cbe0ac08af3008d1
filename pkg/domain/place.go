package domain

// Place is a point of interest in the catalog.
// PlaceName is the selection key: it is unique within a city and there is no numeric ID.
type Place struct {
	City        string  `json:"city" yaml:"city" mapstructure:"city" validate:"required"`
	PlaceName   string  `json:"place_name" yaml:"place_name" mapstructure:"place_name" validate:"required"`
	Category    string  `json:"category" yaml:"category" mapstructure:"category" validate:"required"`
	Description string  `json:"description" yaml:"description" mapstructure:"description"`
	Image       string  `json:"image" yaml:"image" mapstructure:"image" validate:"omitempty,url"`
	Rating      float64 `json:"rating" yaml:"rating" mapstructure:"rating" validate:"gte=0,lte=5"`
}

// Names returns the place names in order.
func Names(places []Place) []string {
	names := make([]string, len(places))
	for i, p := range places {
		names[i] = p.PlaceName
	}
	return names
}
