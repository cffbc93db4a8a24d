// Package components holds small reusable Fyne widgets.
package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// NewTextTable builds a read-only table with a bold header row.
// rows is consulted on every refresh, so the backing data may be swapped and
// the table refreshed without rebuilding it.
func NewTextTable(headers []string, widths []float32, rows func() int, cell func(row, col int) string) *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			return rows(), len(headers)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("Template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row >= rows() || id.Col >= len(headers) {
				label.SetText("")
				return
			}
			label.SetText(cell(id.Row, id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("Header")
		label.TextStyle.Bold = true
		return label
	}
	table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Col >= 0 && id.Col < len(headers) {
			label.SetText(headers[id.Col])
		}
	}

	for i, w := range widths {
		table.SetColumnWidth(i, w)
	}
	return table
}
