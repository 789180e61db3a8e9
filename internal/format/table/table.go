package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format pads rows into aligned columns, two spaces apart. Each column is
// sized to its widest cell.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			pad := strings.Repeat(" ", gap(widths[c], cell))
			switch {
			case alignmentFor(alignments, c) == AlignRight:
				cells[c] = pad + cell
			case c == len(row)-1:
				// No trailing padding on the last column.
				cells[c] = cell
			default:
				cells[c] = cell + pad
			}
		}
		out[i] = strings.Join(cells, "  ")
	}
	return out
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := len([]rune(cell)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func alignmentFor(alignments []Alignment, column int) Alignment {
	if column < len(alignments) {
		return alignments[column]
	}
	return AlignLeft
}

func gap(width int, cell string) int {
	g := width - len([]rune(cell))
	if g < 0 {
		return 0
	}
	return g
}
