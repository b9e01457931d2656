package htmlconverter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	xhtml "golang.org/x/net/html"
)

// atomicPlaceholder is the single character an atomic block carries in place
// of real text; its entity range covers exactly this character.
const atomicPlaceholder = " "

var whitespaceRe = regexp.MustCompile(`[ \t\n\f]+`)

type state struct {
	kinds    kindLookup
	blocks   []converter.Block
	entities map[string]converter.Entity
	current  *blockBuilder
	warnings []converter.Warning
}

// blockBuilder accumulates one block during the walk. length tracks the text
// size in UTF-16 code units so style and entity ranges land on the offsets
// the model indexes by.
type blockBuilder struct {
	blockType converter.BlockType
	depth     int
	text      strings.Builder
	length    int
	styles    []converter.InlineStyleRange
	entities  []converter.EntityRange
	touched   bool
}

// walkContext carries the position-dependent walk state down the recursion.
// The style set is an immutable value: deeper levels extend copies, so a
// sibling walked later never sees a deeper level's additions.
type walkContext struct {
	styles         styleSet
	inFigure       bool
	inCode         bool
	listTag        string
	listDepth      int
	containerType  converter.BlockType
	containerDepth int
}

func (s *state) addWarning(warnType converter.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, converter.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *state) walkChildren(n *xhtml.Node, ctx walkContext) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		s.walkNode(child, ctx)
	}
}

func (s *state) walkNode(n *xhtml.Node, ctx walkContext) {
	switch n.Type {
	case xhtml.TextNode:
		s.appendText(n.Data, ctx)
		return
	case xhtml.ElementNode:
	default:
		return
	}

	action := s.classify(n, ctx)
	switch action.kind {
	case actionSkip:
		return

	case actionLineBreak:
		s.handleLineBreak(ctx)

	case actionList:
		if ctx.inFigure {
			s.walkChildren(n, ctx)
			return
		}
		s.flushBlock(false)
		childCtx := ctx
		childCtx.listTag = action.listTag
		childCtx.listDepth = ctx.listDepth + 1
		s.walkChildren(n, childCtx)

	case actionBlock:
		s.startBlock(n, action, ctx)

	case actionStyle:
		if ctx.inCode {
			s.walkChildren(n, ctx)
			return
		}
		childCtx := ctx
		childCtx.styles = ctx.styles.with(action.styleID)
		s.walkChildren(n, childCtx)

	case actionEntity:
		s.handleEntity(n, action, ctx)

	default:
		s.walkChildren(n, ctx)
	}
}

// startBlock opens a block for one block-level element, walks its children
// into it and flushes it at the element's end. Inside an atomic figure block
// elements are structural wrappers and simply descend.
func (s *state) startBlock(n *xhtml.Node, action nodeAction, ctx walkContext) {
	if ctx.inFigure {
		s.walkChildren(n, ctx)
		return
	}

	blockType := action.blockType
	depth := 0
	childCtx := ctx

	switch blockType {
	case converter.BlockAtomic:
		childCtx.inFigure = true
	case converter.BlockUnorderedListItem, converter.BlockOrderedListItem:
		if ctx.listDepth > 1 {
			depth = ctx.listDepth - 1
		}
		childCtx.containerType = blockType
		childCtx.containerDepth = depth
	case converter.BlockCode:
		childCtx.inCode = true
	case converter.BlockUnstyled:
		// Paragraphs nested in a blockquote or list item keep the
		// container's block type instead of splitting out of it.
		if ctx.containerType != "" {
			blockType = ctx.containerType
			depth = ctx.containerDepth
		}
	case converter.BlockBlockquote:
		childCtx.containerType = converter.BlockBlockquote
		childCtx.containerDepth = 0
	}

	s.flushBlock(false)
	s.openBlock(blockType, depth)
	s.walkChildren(n, childCtx)

	if blockType == converter.BlockAtomic {
		s.finishAtomic()
		return
	}
	s.flushBlock(true)
}

// handleEntity registers one entity. Atomic-natured entities (and anything
// discovered inside a figure) occupy a placeholder character in an atomic
// block; text-natured entities cover the text their element contributes.
func (s *state) handleEntity(n *xhtml.Node, action nodeAction, ctx walkContext) {
	if action.atomic || ctx.inFigure {
		s.placeAtomicEntity(action, ctx)
		return
	}

	s.ensureBlock(ctx)
	start := s.current.length
	s.walkChildren(n, ctx)
	length := s.current.length - start

	key := s.registerEntity(action)
	s.current.entities = append(s.current.entities, converter.EntityRange{
		Offset: start,
		Length: length,
		Key:    key,
	})
	s.current.touched = true
}

func (s *state) placeAtomicEntity(action nodeAction, ctx walkContext) {
	switch {
	case !ctx.inFigure:
		s.flushBlock(false)
		s.openBlock(converter.BlockAtomic, 0)
	case s.current == nil || s.current.blockType != converter.BlockAtomic:
		s.openBlock(converter.BlockAtomic, 0)
	case len(s.current.entities) > 0:
		// One entity per atomic block; further elements in the same
		// figure start their own.
		s.flushBlock(true)
		s.openBlock(converter.BlockAtomic, 0)
	}

	key := s.registerEntity(action)
	offset := s.current.length
	s.appendRaw(atomicPlaceholder)
	s.current.entities = append(s.current.entities, converter.EntityRange{
		Offset: offset,
		Length: 1,
		Key:    key,
	})
	s.current.touched = true

	if !ctx.inFigure {
		s.flushBlock(true)
	}
}

func (s *state) registerEntity(action nodeAction) int {
	key := len(s.entities)
	s.entities[strconv.Itoa(key)] = converter.Entity{
		Type:       action.entityType,
		Mutability: action.mutability,
		Data:       action.data,
	}
	return key
}

// handleLineBreak appends a newline inside an open block; between blocks it
// materializes one empty paragraph, the inverse of the export-side blank-line
// folding.
func (s *state) handleLineBreak(ctx walkContext) {
	if ctx.inFigure {
		return
	}
	if s.current != nil {
		s.appendRaw("\n")
		s.current.touched = true
		return
	}
	s.openBlock(converter.BlockUnstyled, 0)
	s.flushBlock(true)
}

func (s *state) appendText(text string, ctx walkContext) {
	if text == "" {
		return
	}

	blank := strings.TrimSpace(text) == ""
	if s.current == nil {
		if blank {
			return
		}
		s.ensureBlock(ctx)
	} else if blank && (ctx.inFigure || !s.current.touched) {
		// Formatting whitespace never joins atomic text or starts a block.
		return
	}

	if s.current.blockType != converter.BlockCode {
		text = whitespaceRe.ReplaceAllString(text, " ")
	}

	offset := s.current.length
	units := s.appendRaw(text)
	for _, id := range ctx.styles.ids {
		s.current.styles = append(s.current.styles, converter.InlineStyleRange{
			Offset: offset,
			Length: units,
			Style:  id,
		})
	}
	s.current.touched = true
}

// appendRaw writes text to the current block and returns its length in UTF-16
// code units.
func (s *state) appendRaw(text string) int {
	s.current.text.WriteString(text)
	units := converter.TextLength(text)
	s.current.length += units
	return units
}

func (s *state) ensureBlock(ctx walkContext) {
	if s.current != nil {
		return
	}
	if ctx.containerType != "" {
		s.openBlock(ctx.containerType, ctx.containerDepth)
		return
	}
	s.openBlock(converter.BlockUnstyled, 0)
}

func (s *state) openBlock(blockType converter.BlockType, depth int) {
	s.current = &blockBuilder{blockType: blockType, depth: depth}
}

// flushBlock closes the current block. Untouched blocks are kept only when
// the element itself demands it (an explicit empty paragraph), not when a
// sibling merely interrupts.
func (s *state) flushBlock(keepUntouched bool) {
	current := s.current
	if current == nil {
		return
	}
	s.current = nil

	if !current.touched && !keepUntouched {
		return
	}

	styles := mergeStyleRanges(current.styles)
	if styles == nil {
		styles = []converter.InlineStyleRange{}
	}
	entities := current.entities
	if entities == nil {
		entities = []converter.EntityRange{}
	}

	s.blocks = append(s.blocks, converter.Block{
		Type:              current.blockType,
		Depth:             current.depth,
		Text:              current.text.String(),
		InlineStyleRanges: styles,
		EntityRanges:      entities,
	})
}

// finishAtomic closes the block a figure opened. A figure that produced no
// entity degrades to a paragraph so its text is not lost.
func (s *state) finishAtomic() {
	current := s.current
	if current == nil {
		return
	}
	if len(current.entities) == 0 {
		if !current.touched {
			s.current = nil
			return
		}
		current.blockType = converter.BlockUnstyled
		s.addWarning(converter.WarningMissingEntity, "figure", "figure with no recognized entity imported as paragraph")
	}
	s.flushBlock(true)
}

// mergeStyleRanges coalesces ranges of the same style that meet end to start,
// which the per-text-chunk recording above produces routinely.
func mergeStyleRanges(ranges []converter.InlineStyleRange) []converter.InlineStyleRange {
	if len(ranges) == 0 {
		return nil
	}

	merged := make([]converter.InlineStyleRange, 0, len(ranges))
	last := make(map[string]int, 4)
	for _, r := range ranges {
		if index, ok := last[r.Style]; ok {
			prev := &merged[index]
			if prev.Offset+prev.Length == r.Offset {
				prev.Length += r.Length
				continue
			}
		}
		merged = append(merged, r)
		last[r.Style] = len(merged) - 1
	}

	return merged
}
