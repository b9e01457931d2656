// Package mdconverter converts GFM markdown into rich-text content state.
// Markdown constructs with no model counterpart degrade to their text with a
// warning instead of failing; raw HTML blocks go through the htmlconverter
// package so embedded tables and figures import the same way standalone HTML
// does.
package mdconverter

import (
	"strconv"

	"github.com/avelkov/draft-html-converter/converter"
	"github.com/avelkov/draft-html-converter/htmlconverter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Converter converts GFM markdown to content state.
type Converter struct {
	kinds  kindIDs
	html   *htmlconverter.Converter
	parser goldmark.Markdown
}

// kindIDs holds the style and entity ids markdown constructs resolve to. An
// empty id means the kind is not configured and its construct degrades.
type kindIDs struct {
	bold          string
	italic        string
	underline     string
	strikethrough string
	code          string
	alignStyleID  map[string]string

	link    string
	photo   string
	divider string
	table   string
}

type state struct {
	kinds     kindIDs
	html      *htmlconverter.Converter
	source    []byte
	blocks    []converter.Block
	entities  map[string]converter.Entity
	spanStack []string
	warnings  []converter.Warning
}

// New creates a new Converter with the given kind table. A zero-value config
// resolves to converter.DefaultConfig.
func New(config converter.Config) (*Converter, error) {
	if config.Styles == nil {
		config.Styles = converter.DefaultConfig().Styles
	}
	if config.Entities == nil {
		config.Entities = converter.DefaultConfig().Entities
	}

	html, err := htmlconverter.New(config)
	if err != nil {
		return nil, err
	}

	return &Converter{
		kinds: buildKindIDs(config),
		html:  html,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}, nil
}

func buildKindIDs(config converter.Config) kindIDs {
	kinds := kindIDs{
		bold:          config.Styles[converter.KindBold].ID,
		italic:        config.Styles[converter.KindItalic].ID,
		underline:     config.Styles[converter.KindUnderline].ID,
		strikethrough: config.Styles[converter.KindStrikethrough].ID,
		code:          config.Styles[converter.KindCode].ID,
		alignStyleID:  make(map[string]string, 3),

		link:    config.Entities[converter.KindLink].ID,
		photo:   config.Entities[converter.KindPhoto].ID,
		divider: config.Entities[converter.KindDivider].ID,
		table:   config.Entities[converter.KindTable].ID,
	}

	alignments := map[string]string{
		"left":   converter.KindAlignLeft,
		"center": converter.KindAlignCenter,
		"right":  converter.KindAlignRight,
	}
	for value, name := range alignments {
		if kind, ok := config.Styles[name]; ok {
			kinds.alignStyleID[value] = kind.ID
		}
	}

	return kinds
}

// Convert takes a markdown document and builds the equivalent content state.
// The result always carries at least one block.
func (c *Converter) Convert(markdown string) (Result, error) {
	s := &state{
		kinds:    c.kinds,
		html:     c.html,
		source:   []byte(markdown),
		entities: make(map[string]converter.Entity),
	}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	if err := s.convertDocument(root); err != nil {
		return Result{}, err
	}

	if len(s.blocks) == 0 {
		s.blocks = append(s.blocks, converter.Block{
			Type:              converter.BlockUnstyled,
			InlineStyleRanges: []converter.InlineStyleRange{},
			EntityRanges:      []converter.EntityRange{},
		})
	}

	return Result{
		Content: converter.ContentState{
			Blocks:    s.blocks,
			EntityMap: s.entities,
		},
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType converter.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, converter.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

// registerEntity adds an entity under the next free key. Keys are assigned in
// document order starting at zero.
func (s *state) registerEntity(entity converter.Entity) int {
	key := len(s.entities)
	s.entities[strconv.Itoa(key)] = entity
	return key
}
