// Package htmlconverter converts an HTML fragment back into rich-text content
// state. It is the reverse of the converter package and shares its document
// model and recognized-kind configuration table. Import never fails on
// document content: missing attributes default to empty values and degraded
// constructs are reported as warnings on the result.
package htmlconverter

import (
	"fmt"
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	xhtml "golang.org/x/net/html"
)

// Converter converts HTML to content state.
type Converter struct {
	config converter.Config
	kinds  kindLookup
}

// Result holds the output of one import.
type Result struct {
	Content  converter.ContentState `json:"content"`
	Warnings []converter.Warning    `json:"warnings,omitempty"`
}

// kindLookup is the config table resolved into the lookups import needs:
// which style id an alignment value or inline tag maps to, and which entity
// type id each entity kind registers under.
type kindLookup struct {
	alignStyleID  map[string]string
	inlineStyleID map[string]string
	entityID      map[string]string
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
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: config,
		kinds:  buildKindLookup(config),
	}, nil
}

func buildKindLookup(config converter.Config) kindLookup {
	lookup := kindLookup{
		alignStyleID:  make(map[string]string, 3),
		inlineStyleID: make(map[string]string, len(config.Styles)),
		entityID:      make(map[string]string, len(config.Entities)),
	}

	alignments := map[string]string{
		"left":   converter.KindAlignLeft,
		"center": converter.KindAlignCenter,
		"right":  converter.KindAlignRight,
	}
	for value, name := range alignments {
		if kind, ok := config.Styles[name]; ok {
			lookup.alignStyleID[value] = kind.ID
		}
	}
	for name, kind := range config.Styles {
		lookup.inlineStyleID[name] = kind.ID
	}
	for name, kind := range config.Entities {
		lookup.entityID[name] = kind.ID
	}

	return lookup
}

// Convert parses an HTML fragment and builds the equivalent content state.
// The result always carries at least one block.
func (c *Converter) Convert(input string) (Result, error) {
	document, err := xhtml.Parse(strings.NewReader(input))
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse html: %w", err)
	}

	s := &state{
		kinds:    c.kinds,
		entities: make(map[string]converter.Entity),
	}

	if body := findElement(document, "body"); body != nil {
		s.walkChildren(body, walkContext{})
	}
	s.flushBlock(false)

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

func findElement(node *xhtml.Node, tag string) *xhtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == xhtml.ElementNode && strings.EqualFold(node.Data, tag) {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
