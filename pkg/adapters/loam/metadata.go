package loam

// StatusMetadata represents the frontmatter of one status document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type StatusMetadata struct {
	// ID overrides the status name derived from the file name.
	ID string `json:"id" mapstructure:"id"`

	// Next holds the direct successors: a list, a single name, or empty for terminals.
	Next any `json:"next" mapstructure:"next"`

	// Order positions the status in the definition; ties break by name.
	Order int `json:"order" mapstructure:"order"`

	// Description is informational only.
	Description string `json:"description" mapstructure:"description"`
}
