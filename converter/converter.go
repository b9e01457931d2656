// Package converter renders rich-text content state to HTML. It owns the
// shared document model and the recognized-kind configuration table; the
// reverse direction lives in the htmlconverter package.
package converter

import (
	"encoding/json"
	"fmt"
)

// Converter converts content state to HTML.
type Converter struct {
	config Config
	kinds  kindIndex
}

type state struct {
	config   Config
	kinds    kindIndex
	content  ContentState
	warnings []Warning
}

// New creates a new Converter with the given config. A zero-value Config
// resolves to DefaultConfig.
func New(config Config) (*Converter, error) {
	cfg := config.clone().applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		kinds:  cfg.resolve(),
	}, nil
}

// Convert takes a raw content-state JSON document and returns rendered HTML.
func (c *Converter) Convert(input []byte) (Result, error) {
	var content ContentState
	if err := json.Unmarshal(input, &content); err != nil {
		return Result{}, fmt.Errorf("failed to parse content state JSON: %w", err)
	}

	return c.ConvertContent(content)
}

// ConvertContent renders an already-decoded content state. The output is a
// bare fragment with no surrounding document element.
func (c *Converter) ConvertContent(content ContentState) (Result, error) {
	s := &state{
		config:  c.config,
		kinds:   c.kinds,
		content: content,
	}

	html, err := s.convertBlocks()
	if err != nil {
		return Result{}, err
	}

	cleaned, stripped := cleanStrayFigureText(html)
	if stripped {
		s.addWarning(WarningStrayContent, "figure", "stripped stray text around a nested figure")
	}

	return Result{
		HTML:     cleaned,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
