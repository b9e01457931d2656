package converter

// Result holds the output of a conversion.
type Result struct {
	HTML     string    `json:"html"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode      WarningType = "unknown_node"
	WarningDroppedFeature   WarningType = "dropped_feature"
	WarningMissingAttribute WarningType = "missing_attribute"
	WarningMissingEntity    WarningType = "missing_entity"
	WarningStrayContent     WarningType = "stray_content"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
