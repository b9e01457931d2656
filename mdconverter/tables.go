package mdconverter

import (
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// convertTableNode imports a GFM table as a table entity. Cell formatting is
// flattened to plain text, which is all the entity's row matrix carries.
func (s *state) convertTableNode(node *extast.Table) {
	rows := make([][]string, 0, 4)
	header := false

	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		switch typed := row.(type) {
		case *extast.TableHeader:
			if len(rows) == 0 {
				header = true
			}
			rows = append(rows, s.tableRowCells(typed))
		case *extast.TableRow:
			rows = append(rows, s.tableRowCells(typed))
		}
	}

	if len(rows) == 0 {
		return
	}

	s.emitAtomicBlock(s.kinds.table, converter.MutabilityImmutable, map[string]interface{}{
		"rows":   rows,
		"header": header,
	})
}

func (s *state) tableRowCells(row ast.Node) []string {
	cells := make([]string, 0, 4)
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		typed, ok := cell.(*extast.TableCell)
		if !ok {
			continue
		}
		cells = append(cells, strings.TrimSpace(string(typed.Text(s.source))))
	}
	return cells
}
