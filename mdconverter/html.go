package mdconverter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	"github.com/avelkov/draft-html-converter/htmlconverter"
	"github.com/yuin/goldmark/ast"
)

var spanAlignRe = regexp.MustCompile(`(?i)\btext-align\s*:\s*(left|center|right)\b`)

// convertHTMLBlockNode imports a raw HTML block through the htmlconverter
// package and splices the resulting blocks into the document, remapping
// entity keys into this document's entity map.
func (s *state) convertHTMLBlockNode(node *ast.HTMLBlock) error {
	raw := strings.TrimSpace(string(node.Text(s.source)))
	if raw == "" {
		return nil
	}

	imported, err := s.html.Convert(raw)
	if err != nil {
		return fmt.Errorf("failed to import embedded html block: %w", err)
	}

	s.mergeImported(imported)
	return nil
}

func (s *state) mergeImported(imported htmlconverter.Result) {
	s.warnings = append(s.warnings, imported.Warnings...)

	for _, block := range imported.Content.Blocks {
		// Comment-only blocks import as a single empty paragraph; those
		// add nothing between markdown blocks.
		if block.Text == "" && len(block.EntityRanges) == 0 {
			continue
		}

		ranges := make([]converter.EntityRange, 0, len(block.EntityRanges))
		for _, r := range block.EntityRanges {
			entity, ok := imported.Content.Entity(r)
			if !ok {
				continue
			}
			r.Key = s.registerEntity(entity)
			ranges = append(ranges, r)
		}
		block.EntityRanges = ranges
		s.blocks = append(s.blocks, block)
	}
}

// convertRawHTML applies the handful of inline tags markdown authors reach
// for because the syntax has no equivalent. Unrecognized raw HTML is dropped.
func (s *state) convertRawHTML(rawHTML string, b *blockBuilder, stack *styleStack) {
	trimmed := strings.TrimSpace(rawHTML)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "<u>", "<ins>":
		stack.push(s.kinds.underline)
		return
	case "</u>", "</ins>":
		stack.popByID(s.kinds.underline)
		return

	case "<s>", "<strike>", "<del>":
		stack.push(s.kinds.strikethrough)
		return
	case "</s>", "</strike>", "</del>":
		stack.popByID(s.kinds.strikethrough)
		return

	case "<br>", "<br/>", "<br />":
		b.append("\n", stack.current())
		return
	}

	if strings.HasPrefix(lower, "<span") {
		if match := spanAlignRe.FindStringSubmatch(trimmed); match != nil {
			if id, ok := s.kinds.alignStyleID[strings.ToLower(match[1])]; ok {
				stack.push(id)
				s.pushSpanContext(id)
				return
			}
		}
		s.pushSpanContext("")
		return
	}
	if strings.HasPrefix(lower, "</span") {
		if id, ok := s.popSpanContext(); ok && id != "" {
			stack.popByID(id)
		}
		return
	}
}

// The span stack remembers which style, if any, each open span pushed, so the
// matching close pops the right one.
func (s *state) pushSpanContext(styleID string) {
	s.spanStack = append(s.spanStack, styleID)
}

func (s *state) popSpanContext() (string, bool) {
	if len(s.spanStack) == 0 {
		return "", false
	}
	last := len(s.spanStack) - 1
	styleID := s.spanStack[last]
	s.spanStack = s.spanStack[:last]
	return styleID, true
}

func rawHTMLText(node *ast.RawHTML, source []byte) string {
	var sb strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		segment := node.Segments.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}
