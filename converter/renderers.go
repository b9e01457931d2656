package converter

import (
	"html"
	"strings"
)

// Built-in renderers for the default entity kinds. Each returns the inner
// fragment of the custom-block figure; the wrapping happens in
// renderEntityMarkup.

func renderPhoto(entity Entity) (string, error) {
	src := entity.GetStringData("src", "")
	if src == "" {
		return "", &MalformedEntityDataError{Entity: entity.Type, Field: "src"}
	}

	var sb strings.Builder
	sb.WriteString(`<img src="` + html.EscapeString(src) + `">`)
	if caption := entity.GetStringData("caption", ""); caption != "" {
		sb.WriteString("<figcaption>" + html.EscapeString(caption) + "</figcaption>")
	}
	return sb.String(), nil
}

func renderFile(entity Entity) (string, error) {
	src := entity.GetStringData("src", "")
	if src == "" {
		return "", &MalformedEntityDataError{Entity: entity.Type, Field: "src"}
	}
	name := entity.GetStringData("name", "")
	if name == "" {
		return "", &MalformedEntityDataError{Entity: entity.Type, Field: "name"}
	}

	return `<a class="file-name" href="` + html.EscapeString(src) + `" download="` + html.EscapeString(name) + `">` + html.EscapeString(name) + `</a>`, nil
}

func renderDivider(Entity) (string, error) {
	return "<hr/>", nil
}

func renderRich(entity Entity) (string, error) {
	src := entity.GetStringData("src", "")
	if src == "" {
		return "", &MalformedEntityDataError{Entity: entity.Type, Field: "src"}
	}

	return `<div class="rich-media-wrapper"><iframe src="` + html.EscapeString(src) + `" frameborder="0" allowfullscreen></iframe></div>`, nil
}

func renderTable(entity Entity) (string, error) {
	rows := tableRows(entity)
	header := entity.GetBoolData("header")

	var sb strings.Builder
	sb.WriteString("<table>")
	body := rows
	if header && len(rows) > 0 {
		sb.WriteString("<thead><tr>")
		for _, cell := range rows[0] {
			sb.WriteString("<th>" + html.EscapeString(cell) + "</th>")
		}
		sb.WriteString("</tr></thead>")
		body = rows[1:]
	}
	if len(body) > 0 {
		sb.WriteString("<tbody>")
		for _, row := range body {
			sb.WriteString("<tr>")
			for _, cell := range row {
				sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</tbody>")
	}
	sb.WriteString("</table>")
	return sb.String(), nil
}

// tableRows reads the rows field in either its typed form or the
// []interface{} form JSON decoding produces.
func tableRows(entity Entity) [][]string {
	if entity.Data == nil {
		return nil
	}

	switch value := entity.Data["rows"].(type) {
	case [][]string:
		return value
	case []interface{}:
		rows := make([][]string, 0, len(value))
		for _, rawRow := range value {
			cells, ok := rawRow.([]interface{})
			if !ok {
				continue
			}
			row := make([]string, 0, len(cells))
			for _, rawCell := range cells {
				cell, _ := rawCell.(string)
				row = append(row, cell)
			}
			rows = append(rows, row)
		}
		return rows
	}
	return nil
}
