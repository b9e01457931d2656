package mdconverter

import (
	"fmt"
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertInlineChildren(parent ast.Node, b *blockBuilder, stack *styleStack) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		s.convertInlineNode(child, b, stack)
	}
}

func (s *state) convertInlineNode(node ast.Node, b *blockBuilder, stack *styleStack) {
	switch typed := node.(type) {
	case *ast.Text:
		if textValue := string(typed.Value(s.source)); textValue != "" {
			b.append(textValue, stack.current())
		}
		if typed.HardLineBreak() {
			b.append("\n", stack.current())
		} else if typed.SoftLineBreak() {
			b.append(" ", stack.current())
		}

	case *ast.String:
		b.append(string(typed.Value), stack.current())

	case *ast.Emphasis:
		styleID := s.kinds.italic
		if typed.Level >= 2 {
			styleID = s.kinds.bold
		}
		stack.push(styleID)
		s.convertInlineChildren(typed, b, stack)
		stack.popByID(styleID)

	case *extast.Strikethrough:
		stack.push(s.kinds.strikethrough)
		s.convertInlineChildren(typed, b, stack)
		stack.popByID(s.kinds.strikethrough)

	case *ast.CodeSpan:
		stack.push(s.kinds.code)
		s.convertInlineChildren(typed, b, stack)
		stack.popByID(s.kinds.code)

	case *ast.Link:
		s.convertLinkNode(typed, b, stack)

	case *ast.AutoLink:
		url := string(typed.URL(s.source))
		start := b.length
		b.append(url, stack.current())
		s.addLinkRange(b, start, url)

	case *ast.Image:
		alt := strings.TrimSpace(string(typed.Text(s.source)))
		if alt == "" {
			alt = "image"
		}
		s.addWarning(
			converter.WarningDroppedFeature,
			typed.Kind().String(),
			"image mixed with flowing text imported as its alt text",
		)
		b.append(alt, stack.current())

	case *ast.RawHTML:
		s.convertRawHTML(rawHTMLText(typed, s.source), b, stack)

	case *extast.TaskCheckBox:
		marker := "[ ] "
		if typed.IsChecked {
			marker = "[x] "
		}
		b.append(marker, stack.current())

	default:
		if node.HasChildren() {
			s.convertInlineChildren(node, b, stack)
			return
		}
		s.warnUnknownInline(node, b, stack)
	}
}

func (s *state) convertLinkNode(node *ast.Link, b *blockBuilder, stack *styleStack) {
	href := strings.TrimSpace(string(node.Destination))
	if href == "" {
		s.convertInlineChildren(node, b, stack)
		return
	}

	start := b.length
	s.convertInlineChildren(node, b, stack)
	s.addLinkRange(b, start, href)
}

// addLinkRange covers the text appended since start with a link entity.
func (s *state) addLinkRange(b *blockBuilder, start int, href string) {
	length := b.length - start
	if length == 0 {
		return
	}

	key := s.registerEntity(converter.Entity{
		Type:       s.kinds.link,
		Mutability: converter.MutabilityMutable,
		Data: map[string]interface{}{
			"url":      href,
			"external": isExternalURL(href),
		},
	})
	b.entities = append(b.entities, converter.EntityRange{
		Offset: start,
		Length: length,
		Key:    key,
	})
}

func isExternalURL(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

func (s *state) warnUnknownInline(node ast.Node, b *blockBuilder, stack *styleStack) {
	textValue := strings.TrimSpace(string(node.Text(s.source)))
	if textValue == "" {
		return
	}

	nodeKind := node.Kind().String()
	s.addWarning(
		converter.WarningUnknownNode,
		nodeKind,
		fmt.Sprintf("unsupported markdown inline node: %s", nodeKind),
	)
	b.append(textValue, stack.current())
}
