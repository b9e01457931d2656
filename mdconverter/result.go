package mdconverter

import "github.com/avelkov/draft-html-converter/converter"

// Result holds the output of a markdown conversion.
type Result struct {
	Content  converter.ContentState `json:"content"`
	Warnings []converter.Warning    `json:"warnings,omitempty"`
}
