package htmlconverter

import (
	"regexp"
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	xhtml "golang.org/x/net/html"
)

var textAlignRe = regexp.MustCompile(`(?i)\btext-align\s*:\s*(left|center|right)\b`)

type actionKind int

const (
	actionDescend actionKind = iota
	actionSkip
	actionBlock
	actionList
	actionStyle
	actionEntity
	actionLineBreak
)

// nodeAction is the classification of one element: open a block, add a style
// to the running set, create an entity, fold a line break, or descend.
type nodeAction struct {
	kind       actionKind
	blockType  converter.BlockType
	listTag    string
	styleID    string
	entityType string
	mutability converter.Mutability
	data       map[string]interface{}
	atomic     bool
}

// classify decides what one element node contributes to the document model.
// First match wins: entity-bearing tags beat the generic block and style
// mappings, and everything unrecognized descends so its text is never lost.
func (s *state) classify(n *xhtml.Node, ctx walkContext) nodeAction {
	switch tag := strings.ToLower(n.Data); tag {
	case "figure":
		if ctx.inFigure {
			return nodeAction{kind: actionDescend}
		}
		return nodeAction{kind: actionBlock, blockType: converter.BlockAtomic}

	case "table":
		rows, header := s.tableData(n)
		return nodeAction{
			kind:       actionEntity,
			entityType: s.kinds.entityID[converter.KindTable],
			mutability: converter.MutabilityImmutable,
			atomic:     true,
			data: map[string]interface{}{
				"rows":   rows,
				"header": header,
			},
		}

	case "a":
		if hasClass(n, "file-name") {
			src := getAttr(n, "href")
			if src == "" {
				s.addWarning(converter.WarningMissingAttribute, tag, "file anchor without href")
			}
			name := getAttr(n, "download")
			if name == "" {
				name = strings.TrimSpace(extractText(n))
			}
			if name == "" {
				s.addWarning(converter.WarningMissingAttribute, tag, "file anchor without a name")
			}
			return nodeAction{
				kind:       actionEntity,
				entityType: s.kinds.entityID[converter.KindFile],
				mutability: converter.MutabilityImmutable,
				data: map[string]interface{}{
					"src":  src,
					"name": name,
				},
			}
		}

		url := getAttr(n, "href")
		if url == "" {
			s.addWarning(converter.WarningMissingAttribute, tag, "anchor without href")
		}
		return nodeAction{
			kind:       actionEntity,
			entityType: s.kinds.entityID[converter.KindLink],
			mutability: converter.MutabilityMutable,
			data: map[string]interface{}{
				"url":      url,
				"external": strings.EqualFold(getAttr(n, "target"), "_blank"),
			},
		}

	case "img":
		if !ctx.inFigure {
			return nodeAction{kind: actionDescend}
		}
		src := getAttr(n, "src")
		if src == "" {
			s.addWarning(converter.WarningMissingAttribute, tag, "image without src")
		}
		data := map[string]interface{}{"src": src}
		if caption := siblingCaption(n); caption != "" {
			data["caption"] = caption
		}
		return nodeAction{
			kind:       actionEntity,
			entityType: s.kinds.entityID[converter.KindPhoto],
			mutability: converter.MutabilityImmutable,
			atomic:     true,
			data:       data,
		}

	case "iframe":
		if !ctx.inFigure {
			return nodeAction{kind: actionDescend}
		}
		src := getAttr(n, "src")
		if src == "" {
			s.addWarning(converter.WarningMissingAttribute, tag, "iframe without src")
		}
		return nodeAction{
			kind:       actionEntity,
			entityType: s.kinds.entityID[converter.KindRich],
			mutability: converter.MutabilityImmutable,
			atomic:     true,
			data:       map[string]interface{}{"src": src},
		}

	case "hr":
		return nodeAction{
			kind:       actionEntity,
			entityType: s.kinds.entityID[converter.KindDivider],
			mutability: converter.MutabilityImmutable,
			atomic:     true,
			data:       map[string]interface{}{},
		}

	case "br":
		return nodeAction{kind: actionLineBreak}

	case "span":
		if match := textAlignRe.FindStringSubmatch(getAttr(n, "style")); match != nil {
			if id, ok := s.kinds.alignStyleID[strings.ToLower(match[1])]; ok {
				return nodeAction{kind: actionStyle, styleID: id}
			}
		}
		return nodeAction{kind: actionDescend}

	case "strong", "b":
		return s.inlineStyleAction(converter.KindBold)
	case "em", "i":
		return s.inlineStyleAction(converter.KindItalic)
	case "u", "ins":
		return s.inlineStyleAction(converter.KindUnderline)
	case "s", "strike", "del":
		return s.inlineStyleAction(converter.KindStrikethrough)
	case "code":
		return s.inlineStyleAction(converter.KindCode)

	case "ul", "ol":
		return nodeAction{kind: actionList, listTag: tag}

	case "li":
		blockType := converter.BlockUnorderedListItem
		if ctx.listTag == "ol" {
			blockType = converter.BlockOrderedListItem
		}
		return nodeAction{kind: actionBlock, blockType: blockType}

	case "p", "div":
		return nodeAction{kind: actionBlock, blockType: converter.BlockUnstyled}
	case "h1":
		return nodeAction{kind: actionBlock, blockType: converter.BlockHeaderOne}
	case "h2":
		return nodeAction{kind: actionBlock, blockType: converter.BlockHeaderTwo}
	case "h3":
		return nodeAction{kind: actionBlock, blockType: converter.BlockHeaderThree}
	case "h4":
		return nodeAction{kind: actionBlock, blockType: converter.BlockHeaderFour}
	case "h5":
		return nodeAction{kind: actionBlock, blockType: converter.BlockHeaderFive}
	case "h6":
		return nodeAction{kind: actionBlock, blockType: converter.BlockHeaderSix}
	case "blockquote":
		return nodeAction{kind: actionBlock, blockType: converter.BlockBlockquote}
	case "pre":
		return nodeAction{kind: actionBlock, blockType: converter.BlockCode}

	case "script", "style", "template", "head", "title", "meta":
		return nodeAction{kind: actionSkip}
	}

	return nodeAction{kind: actionDescend}
}

func (s *state) inlineStyleAction(kindName string) nodeAction {
	id, ok := s.kinds.inlineStyleID[kindName]
	if !ok {
		return nodeAction{kind: actionDescend}
	}
	return nodeAction{kind: actionStyle, styleID: id}
}

// siblingCaption returns the text of a figcaption sharing the image's parent
// figure, so the caption survives in entity data as well as in the rendered
// markup.
func siblingCaption(n *xhtml.Node) string {
	if n.Parent == nil {
		return ""
	}
	for sibling := n.Parent.FirstChild; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type == xhtml.ElementNode && strings.EqualFold(sibling.Data, "figcaption") {
			return strings.TrimSpace(extractText(sibling))
		}
	}
	return ""
}

func getAttr(node *xhtml.Node, key string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

func hasClass(node *xhtml.Node, class string) bool {
	for _, value := range strings.Fields(getAttr(node, "class")) {
		if value == class {
			return true
		}
	}
	return false
}

// extractText concatenates all descendant text of a node, with line breaks
// for br elements.
func extractText(node *xhtml.Node) string {
	var sb strings.Builder

	var walk func(current *xhtml.Node)
	walk = func(current *xhtml.Node) {
		switch current.Type {
		case xhtml.TextNode:
			sb.WriteString(current.Data)
		case xhtml.ElementNode:
			if strings.EqualFold(current.Data, "br") {
				sb.WriteString("\n")
				return
			}
		}
		for child := current.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}

	return sb.String()
}
