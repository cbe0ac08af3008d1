package loam

// PlaceMetadata is the frontmatter of a place document.
// The Markdown body is the description when the description key is absent.
type PlaceMetadata struct {
	City        string `json:"city" mapstructure:"city"`
	PlaceName   string `json:"place_name" mapstructure:"place_name"`
	Category    string `json:"category" mapstructure:"category"`
	Description string `json:"description" mapstructure:"description"`
	Image       string `json:"image" mapstructure:"image"`

	// Rating is left untyped: YAML yields int or float64, strict mode yields json.Number.
	Rating any `json:"rating" mapstructure:"rating"`
}
