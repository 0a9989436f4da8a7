package render

import (
	"fmt"

	"htmlview/markup"
)

// TableModel is header row and data rows of a table.
type TableModel struct {
	Headers []string
	Rows    [][]string
}

// ExtractTable collects text of every descendant th as headers, regardless
// of which row contains it, and text of td cells grouped by enclosing tr.
// Rows without td cells are dropped. Any failure results in empty model.
func ExtractTable(el *markup.Element) TableModel {
	m, err := extractTable(el)
	if err != nil {
		return TableModel{}
	}
	return m
}

func extractTable(el *markup.Element) (TableModel, error) {
	var m TableModel
	if el == nil {
		return m, nil
	}

	for _, th := range el.Select("th") {
		text, err := th.ReadText()
		if err != nil {
			return TableModel{}, fmt.Errorf("table header: %w", err)
		}
		m.Headers = append(m.Headers, text)
	}
	for i, tr := range el.Select("tr") {
		var row []string
		for _, td := range tr.Select("td") {
			text, err := td.ReadText()
			if err != nil {
				return TableModel{}, fmt.Errorf("table row %d: %w", i, err)
			}
			row = append(row, text)
		}
		if len(row) > 0 {
			m.Rows = append(m.Rows, row)
		}
	}
	return m, nil
}
