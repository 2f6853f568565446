package ingest

import (
	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
)

// Finding is one named observation extracted from an investigation's
// findings table.
type Finding struct {
	Name           *string
	Interpretation *string
	Value          *string
}

// TableKind selects the positional layout of a findings table.
type TableKind int

const (
	QuantitativeFindings TableKind = iota
	CultureFindings
)

// findingOffsets is the single place the positional table format is encoded.
// The source emits these tables as wide row matrices without usable headers,
// so the offsets are fixed format constants per table kind and must not be
// derived at runtime. Culture tables carry no interpretation column; the -1
// offset reads as nil.
var findingOffsets = map[TableKind]struct{ name, interp, value int }{
	QuantitativeFindings: {name: 4, interp: 8, value: 9},
	CultureFindings:      {name: 1, interp: -1, value: 2},
}

// FlattenFindings extracts findings from a nested matrix shaped as
// {"Data": [headerRow, dataRow, ...]}. Row 0 carries presentation labels and
// is skipped. Rows whose name cell is empty are formatting artifacts and are
// dropped. A nil or malformed matrix yields no findings.
func FlattenFindings(matrix any, kind TableKind) []Finding {
	rows := capture.Arr(capture.Field(matrix, "Data"))
	if len(rows) < 2 {
		return nil
	}
	off := findingOffsets[kind]

	var out []Finding
	for _, row := range rows[1:] {
		name := cell(row, off.name)
		if name == nil {
			continue
		}
		out = append(out, Finding{
			Name:           name,
			Interpretation: cell(row, off.interp),
			Value:          cell(row, off.value),
		})
	}
	return out
}

// cell returns the string at a positional index of a row array, or nil when
// the index is out of range, non-string, or empty.
func cell(row any, idx int) *string {
	cells := capture.Arr(row)
	if idx < 0 || idx >= len(cells) {
		return nil
	}
	s, ok := cells[idx].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// matrixCell reads one fixed cell address out of a {"Data": [...]} matrix.
func matrixCell(matrix any, rowIdx, colIdx int) *string {
	rows := capture.Arr(capture.Field(matrix, "Data"))
	if rowIdx < 0 || rowIdx >= len(rows) {
		return nil
	}
	return cell(rows[rowIdx], colIdx)
}
