package xlsx

import (
	"fmt"
	"strconv"

	"github.com/tsawler/titulus/model"
)

// sheet is one worksheet flattened to a grid of typed values. Rows may be
// ragged; value squares them on access.
type sheet struct {
	name string
	grid [][]model.Value
}

func (s *sheet) value(row, col int) model.Value {
	if row < 0 || row >= len(s.grid) {
		return model.MissingValue()
	}
	line := s.grid[row]
	if col < 0 || col >= len(line) {
		return model.MissingValue()
	}
	return line[col]
}

// applyMerge blanks the covered cells of one merged region so that only the
// anchor contributes a value. Malformed references are ignored.
func (s *sheet) applyMerge(ref string) {
	c0, r0, c1, r1, err := parseRangeRef(ref)
	if err != nil {
		return
	}
	for row := r0; row <= r1 && row < len(s.grid); row++ {
		line := s.grid[row]
		for col := c0; col <= c1 && col < len(line); col++ {
			if row == r0 && col == c0 {
				continue
			}
			line[col] = model.MissingValue()
		}
	}
}

// contentBounds finds the bounds of non-missing cells. An empty sheet
// reports minRow > maxRow.
func (s *sheet) contentBounds() (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = len(s.grid), -1
	minCol, maxCol = int(^uint(0)>>1), -1

	for rowIdx, line := range s.grid {
		for colIdx, v := range line {
			if v.IsMissing() {
				continue
			}
			if rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return minRow, maxRow, minCol, maxCol
}

// parseCellRef parses a reference like "A1" or "AA100" into 0-indexed
// column and row.
func parseCellRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && isRefLetter(ref[i]) {
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference: %q", ref)
	}

	col = 0
	for _, c := range ref[:i] {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		col = col*26 + int(c-'A') + 1
	}
	col--

	n, err := strconv.Atoi(ref[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid row in reference: %q", ref)
	}
	return col, n - 1, nil
}

// parseRangeRef parses a region like "A1:D10" into 0-indexed corners.
func parseRangeRef(ref string) (startCol, startRow, endCol, endRow int, err error) {
	colon := -1
	for i := 0; i < len(ref); i++ {
		if ref[i] == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range reference: %q", ref)
	}

	startCol, startRow, err = parseCellRef(ref[:colon])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	endCol, endRow, err = parseCellRef(ref[colon+1:])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return startCol, startRow, endCol, endRow, nil
}

func isRefLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
