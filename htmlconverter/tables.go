package htmlconverter

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// tableData flattens a table element into the row matrix the table entity
// carries. The flag marks the first row as a header row, either because it
// came from a thead or because every cell in it is a th. The parser wraps
// bare rows in an implicit tbody, so the th check applies to section rows
// just as much as to direct children.
func (s *state) tableData(table *xhtml.Node) ([][]string, bool) {
	rows := make([][]string, 0, 4)
	header := false

	addRow := func(row *xhtml.Node, fromHead bool) {
		cells, allHeader := tableRow(row)
		if len(cells) == 0 {
			return
		}
		if len(rows) == 0 && (fromHead || allHeader) {
			header = true
		}
		rows = append(rows, cells)
	}

	for child := table.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xhtml.ElementNode {
			continue
		}

		switch strings.ToLower(child.Data) {
		case "thead", "tbody", "tfoot":
			fromHead := strings.EqualFold(child.Data, "thead")
			for row := child.FirstChild; row != nil; row = row.NextSibling {
				if row.Type == xhtml.ElementNode && strings.EqualFold(row.Data, "tr") {
					addRow(row, fromHead)
				}
			}
		case "tr":
			addRow(child, false)
		}
	}

	return rows, header
}

// tableRow extracts the cell texts of one tr. The flag reports whether every
// cell is a th.
func tableRow(row *xhtml.Node) ([]string, bool) {
	cells := make([]string, 0, 4)
	allHeader := true
	for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
		if cell.Type != xhtml.ElementNode {
			continue
		}
		tag := strings.ToLower(cell.Data)
		if tag != "td" && tag != "th" {
			continue
		}
		if tag != "th" {
			allHeader = false
		}
		cells = append(cells, normalizeCellText(extractText(cell)))
	}
	if len(cells) == 0 {
		return nil, false
	}
	return cells, allHeader
}

// normalizeCellText collapses the formatting whitespace authors indent cells
// with while keeping intentional line breaks.
func normalizeCellText(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")

	lines := strings.Split(value, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
